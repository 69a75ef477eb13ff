package builder

import (
	"context"
	"encoding/json"
	"fmt"

	"singularity/internal/spec"
)

// ReactNativeBuilder generates a minimal React Native project.
type ReactNativeBuilder struct {
	backend Backend
}

func (b *ReactNativeBuilder) Framework() string { return "react_native" }

func (b *ReactNativeBuilder) GenerateCode(app spec.AppSpecification, _ spec.Architecture) FileSet {
	return FileSet{
		"App.js":                   b.appJS(app),
		"package.json":             b.packageJSON(app),
		"android/app/build.gradle": androidBuildGradle(app),
	}
}

func (b *ReactNativeBuilder) BuildArtifact(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error) {
	return b.backend.Build(ctx, app, files)
}

func (b *ReactNativeBuilder) appJS(app spec.AppSpecification) string {
	return fmt.Sprintf(`import React from 'react';
import { View, Text, StyleSheet } from 'react-native';

const App = () => {
  return (
    <View style={styles.container}>
      <Text style={styles.title}>%s</Text>
      <Text style={styles.description}>%s</Text>
    </View>
  );
};

const styles = StyleSheet.create({
  container: {
    flex: 1,
    justifyContent: 'center',
    alignItems: 'center',
    backgroundColor: '#f0f0f0',
  },
  title: {
    fontSize: 24,
    fontWeight: 'bold',
    marginBottom: 10,
  },
  description: {
    fontSize: 16,
    textAlign: 'center',
    margin: 20,
  },
});

export default App;
`, app.Name, app.Description)
}

func (b *ReactNativeBuilder) packageJSON(app spec.AppSpecification) string {
	payload, _ := json.MarshalIndent(map[string]any{
		"name":        slug(app.Name, "_"),
		"version":     "1.0.0",
		"description": app.Description,
		"main":        "index.js",
		"dependencies": map[string]string{
			"react":        "^18.0.0",
			"react-native": "^0.72.0",
		},
	}, "", "  ")
	return string(payload)
}

// androidBuildGradle is shared by the react_native and native_android
// builders.
func androidBuildGradle(app spec.AppSpecification) string {
	return fmt.Sprintf(`android {
    compileSdkVersion 33
    defaultConfig {
        applicationId "%s"
        minSdkVersion 21
        targetSdkVersion 33
        versionCode 1
        versionName "1.0"
    }
}
`, packageID(app))
}
