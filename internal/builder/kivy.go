package builder

import (
	"context"
	"fmt"
	"strings"

	"singularity/internal/spec"
)

// KivyBuilder generates a minimal Python Kivy project.
type KivyBuilder struct {
	backend Backend
}

func (b *KivyBuilder) Framework() string { return "kivy" }

func (b *KivyBuilder) GenerateCode(app spec.AppSpecification, _ spec.Architecture) FileSet {
	return FileSet{
		"main.py":        b.mainPy(app),
		"buildozer.spec": b.buildozerSpec(app),
	}
}

func (b *KivyBuilder) BuildArtifact(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error) {
	return b.backend.Build(ctx, app, files)
}

func (b *KivyBuilder) mainPy(app spec.AppSpecification) string {
	className := strings.ReplaceAll(app.Name, " ", "")
	return fmt.Sprintf(`from kivy.app import App
from kivy.uix.boxlayout import BoxLayout
from kivy.uix.label import Label

class %[1]sApp(App):
    def build(self):
        layout = BoxLayout(orientation='vertical', padding=20, spacing=10)

        title_label = Label(
            text='%[2]s',
            font_size='24sp',
            size_hint_y=None,
            height='60dp'
        )

        desc_label = Label(
            text='%[3]s',
            font_size='16sp',
            text_size=(None, None),
            halign='center'
        )

        layout.add_widget(title_label)
        layout.add_widget(desc_label)

        return layout

if __name__ == '__main__':
    %[1]sApp().run()
`, className, app.Name, app.Description)
}

func (b *KivyBuilder) buildozerSpec(app spec.AppSpecification) string {
	return fmt.Sprintf(`[app]
title = %s
package.name = %s
package.domain = %s
source.dir = .
version = 1.0
requirements = python3,kivy
[buildozer]
log_level = 2
`, app.Name, slug(app.Name, ""), packageID(app))
}
