package builder

import (
	"context"
	"fmt"

	"singularity/internal/spec"
)

// FlutterBuilder generates a minimal Flutter project.
type FlutterBuilder struct {
	backend Backend
}

func (b *FlutterBuilder) Framework() string { return "flutter" }

func (b *FlutterBuilder) GenerateCode(app spec.AppSpecification, _ spec.Architecture) FileSet {
	return FileSet{
		"lib/main.dart": b.mainDart(app),
		"pubspec.yaml":  b.pubspec(app),
	}
}

func (b *FlutterBuilder) BuildArtifact(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error) {
	return b.backend.Build(ctx, app, files)
}

func (b *FlutterBuilder) mainDart(app spec.AppSpecification) string {
	return fmt.Sprintf(`import 'package:flutter/material.dart';

void main() {
  runApp(MyApp());
}

class MyApp extends StatelessWidget {
  @override
  Widget build(BuildContext context) {
    return MaterialApp(
      title: '%[1]s',
      theme: ThemeData(
        primarySwatch: Colors.blue,
      ),
      home: MyHomePage(title: '%[1]s'),
    );
  }
}

class MyHomePage extends StatefulWidget {
  MyHomePage({Key? key, required this.title}) : super(key: key);
  final String title;

  @override
  _MyHomePageState createState() => _MyHomePageState();
}

class _MyHomePageState extends State<MyHomePage> {
  @override
  Widget build(BuildContext context) {
    return Scaffold(
      appBar: AppBar(
        title: Text(widget.title),
      ),
      body: Center(
        child: Column(
          mainAxisAlignment: MainAxisAlignment.center,
          children: <Widget>[
            Text(
              '%[2]s',
              style: Theme.of(context).textTheme.titleLarge,
              textAlign: TextAlign.center,
            ),
          ],
        ),
      ),
    );
  }
}
`, app.Name, app.Description)
}

func (b *FlutterBuilder) pubspec(app spec.AppSpecification) string {
	return fmt.Sprintf(`name: %s
description: %s
version: 1.0.0+1

environment:
  sdk: ">=2.17.0 <4.0.0"

dependencies:
  flutter:
    sdk: flutter
  cupertino_icons: ^1.0.2

dev_dependencies:
  flutter_test:
    sdk: flutter
  flutter_lints: ^2.0.0

flutter:
  uses-material-design: true
`, slug(app.Name, "_"), app.Description)
}
