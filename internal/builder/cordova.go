package builder

import (
	"context"
	"fmt"

	"singularity/internal/spec"
)

// CordovaBuilder generates a minimal Apache Cordova project.
type CordovaBuilder struct {
	backend Backend
}

func (b *CordovaBuilder) Framework() string { return "cordova" }

func (b *CordovaBuilder) GenerateCode(app spec.AppSpecification, _ spec.Architecture) FileSet {
	return FileSet{
		"www/index.html": b.indexHTML(app),
		"config.xml":     b.configXML(app),
	}
}

func (b *CordovaBuilder) BuildArtifact(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error) {
	return b.backend.Build(ctx, app, files)
}

func (b *CordovaBuilder) indexHTML(app spec.AppSpecification) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>%[1]s</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
            text-align: center;
        }
        .container {
            max-width: 600px;
            margin: 0 auto;
            padding: 40px 20px;
        }
        h1 {
            font-size: 2.5em;
            margin-bottom: 20px;
        }
        p {
            font-size: 1.2em;
            line-height: 1.6;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>%[1]s</h1>
        <p>%[2]s</p>
    </div>
</body>
</html>
`, app.Name, app.Description)
}

func (b *CordovaBuilder) configXML(app spec.AppSpecification) string {
	return fmt.Sprintf(`<?xml version='1.0' encoding='utf-8'?>
<widget id="%s" version="1.0.0" xmlns="http://www.w3.org/ns/widgets">
    <name>%s</name>
    <description>%s</description>
    <author email="dev@singularity.com">Project Singularity</author>
    <content src="index.html" />
    <access origin="*" />
    <platform name="android">
        <preference name="android-minSdkVersion" value="21" />
        <preference name="android-targetSdkVersion" value="33" />
    </platform>
</widget>
`, packageID(app), app.Name, app.Description)
}
