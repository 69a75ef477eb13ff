package prompt

import "errors"

var ErrMissingVariable = errors.New("prompt: missing template variable")

// Template names used by the generation pipeline.
const (
	AppAnalysis     = "app_analysis"
	AppArchitecture = "app_architecture"
	CodeGeneration  = "code_generation"
)

// Categories and Frameworks are the closed enums the analysis template asks
// the model to choose from. internal/spec validates against the same sets.
var Categories = []string{
	"productivity", "utility", "entertainment", "business", "education",
	"social", "health", "finance", "travel", "shopping", "news",
	"photography", "music", "sports", "weather", "food", "lifestyle",
}

var Frameworks = []string{
	"react_native", "flutter", "kivy", "cordova", "native_android",
}

// Registry returns the built-in templates keyed by name.
func Registry() map[string]Template {
	return map[string]Template{
		AppAnalysis:     analysisTemplate,
		AppArchitecture: architectureTemplate,
		CodeGeneration:  codeGenerationTemplate,
	}
}

var analysisTemplate = Template{
	Name:      AppAnalysis,
	Kind:      KindAnalysis,
	Variables: []string{"prompt", "preferences"},
	Constraints: Constraints{
		RequiredFields:  []string{"name", "description", "category", "framework", "features"},
		ValidCategories: Categories,
		ValidFrameworks: Frameworks,
		MinFeatures:     3,
		MaxFeatures:     15,
	},
	Models: []string{
		"openai::gpt-4-turbo-preview",
		"openai::gpt-4",
		"anthropic::claude-3-opus",
		"gemini::gemini-pro",
	},
	MaxTokens:   3000,
	Temperature: 0.8,
	Body: `You are an expert mobile app analyst. Analyze the following app description and extract structured information.

User Request: "{prompt}"
User Preferences: {preferences}

Extract and return a JSON object with these fields:
- name: App name (generate creative name if not specified)
- description: Detailed app description (expand on user input)
- category: One of [productivity, utility, entertainment, business, education, social, health, finance, travel, shopping, news, photography, music, sports, weather, food, lifestyle]
- framework: Recommended framework based on requirements [react_native, flutter, kivy, cordova, native_android]
- features: List of main features (be comprehensive)
- ui_style: UI/UX style description (modern, minimalist, colorful, professional, etc.)
- target_audience: Target user demographic
- complexity_level: Complexity on 1-10 scale
- api_integrations: Required external APIs
- permissions: Required Android permissions
- monetization: Suggested monetization strategy
- similar_apps: List of similar existing apps for reference
- unique_selling_points: What makes this app special
- technical_requirements: Special technical considerations

Consider these factors:
1. App complexity and required features
2. Target audience and use case
3. Performance requirements
4. Development timeline
5. Maintenance considerations

Respond with valid JSON only. Be thorough and creative while staying practical.`,
}

var architectureTemplate = Template{
	Name:      AppArchitecture,
	Kind:      KindArchitecture,
	Variables: []string{"app_spec", "framework", "complexity"},
	Constraints: Constraints{
		RequiredFields: []string{"components", "screens", "navigation"},
		MinComponents:  5,
		MinScreens:     2,
		MaxScreens:     20,
	},
	Models: []string{
		"openai::gpt-4-turbo-preview",
		"anthropic::claude-3-opus",
		"gemini::gemini-pro",
	},
	MaxTokens:   4000,
	Temperature: 0.6,
	Body: `You are a senior software architect specializing in mobile applications. Design a comprehensive architecture for the following app:

App Specification:
{app_spec}

Framework: {framework}
Complexity Level: {complexity}/10

Design a detailed application architecture and return a JSON object with:

- components: List of UI components with descriptions
- screens: List of app screens/pages with navigation flow
- navigation: Navigation structure and routing
- data_flow: Data management approach (state management, local storage, etc.)
- external_services: Required external integrations and APIs
- file_structure: Recommended project file/folder structure
- dependencies: Required packages and libraries
- database_schema: If data persistence is needed
- api_endpoints: If backend services are required
- security_considerations: Security measures and best practices
- performance_optimizations: Performance enhancement strategies
- testing_strategy: Recommended testing approach
- deployment_considerations: Build and deployment requirements

Consider these architectural principles:
1. Scalability and maintainability
2. Performance optimization
3. Security best practices
4. User experience optimization
5. Code reusability
6. Framework-specific best practices

Provide detailed, production-ready architecture. Return valid JSON only.`,
}

var codeGenerationTemplate = Template{
	Name:      CodeGeneration,
	Kind:      KindCodeGeneration,
	Variables: []string{"framework", "app_spec", "architecture", "component"},
	Constraints: Constraints{
		MinFiles: 1,
		MaxFiles: 10,
	},
	Models: []string{
		"openai::gpt-4-turbo-preview",
		"openai::gpt-4",
	},
	MaxTokens:   6000,
	Temperature: 0.4,
	Body: `You are an expert {framework} developer. Generate production-ready code for the following specification:

App Specification:
{app_spec}

Architecture:
{architecture}

Component to Generate: {component}

Generate complete, production-ready code with:
1. Proper error handling
2. Type safety (where applicable)
3. Performance optimizations
4. Accessibility features
5. Responsive design
6. Clean, maintainable code structure
7. Comprehensive comments
8. Best practices for {framework}

Include:
- Main component/screen code
- Styling/CSS (if applicable)
- State management
- API integration (if needed)
- Navigation setup
- Testing utilities

Return a JSON object with:
- files: Dictionary of filename -> file content
- dependencies: List of required packages
- setup_instructions: Step-by-step setup guide
- testing_notes: How to test the component
- optimization_notes: Performance considerations

Focus on code quality, maintainability, and following {framework} best practices.`,
}
