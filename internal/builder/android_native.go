package builder

import (
	"context"
	"fmt"

	"singularity/internal/spec"
)

// NativeAndroidBuilder generates a minimal plain-Android project.
type NativeAndroidBuilder struct {
	backend Backend
}

func (b *NativeAndroidBuilder) Framework() string { return "native_android" }

func (b *NativeAndroidBuilder) GenerateCode(app spec.AppSpecification, _ spec.Architecture) FileSet {
	return FileSet{
		"app/src/main/java/MainActivity.java": b.mainActivity(app),
		"app/src/main/AndroidManifest.xml":    b.manifest(app),
		"app/build.gradle":                    androidBuildGradle(app),
	}
}

func (b *NativeAndroidBuilder) BuildArtifact(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error) {
	return b.backend.Build(ctx, app, files)
}

func (b *NativeAndroidBuilder) mainActivity(app spec.AppSpecification) string {
	return fmt.Sprintf(`package %s;

import android.app.Activity;
import android.os.Bundle;
import android.widget.TextView;
import android.widget.LinearLayout;

public class MainActivity extends Activity {
    @Override
    protected void onCreate(Bundle savedInstanceState) {
        super.onCreate(savedInstanceState);

        LinearLayout layout = new LinearLayout(this);
        layout.setOrientation(LinearLayout.VERTICAL);
        layout.setPadding(40, 40, 40, 40);

        TextView titleView = new TextView(this);
        titleView.setText("%s");
        titleView.setTextSize(24);

        TextView descView = new TextView(this);
        descView.setText("%s");
        descView.setTextSize(16);

        layout.addView(titleView);
        layout.addView(descView);

        setContentView(layout);
    }
}
`, packageID(app), app.Name, app.Description)
}

func (b *NativeAndroidBuilder) manifest(app spec.AppSpecification) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android"
    package="%s">

    <application
        android:allowBackup="true"
        android:label="%s"
        android:theme="@android:style/Theme.Material.Light">
        <activity
            android:name=".MainActivity"
            android:exported="true">
            <intent-filter>
                <action android:name="android.intent.action.MAIN" />
                <category android:name="android.intent.category.LAUNCHER" />
            </intent-filter>
        </activity>
    </application>
</manifest>
`, packageID(app), app.Name)
}
