package skillgraph

import "strings"

// Skill categories assigned by the inference heuristic. Purely cosmetic:
// a wrong guess never breaks an invariant and an admin can correct it.
const (
	CategoryLanguage  = "Language"
	CategoryFramework = "Framework/Library"
	CategoryDatabase  = "Database"
	CategoryDevOps    = "DevOps/Cloud"
	CategoryTooling   = "Tooling"
	CategoryTesting   = "Testing"
	CategoryUIUX      = "UI/UX"
	CategoryOther     = "Other"
)

const DefaultProficiency = "intermediate"

type categoryKeywords struct {
	category string
	keywords []string
}

// Ordered: the first category whose keyword set matches wins.
var categoryTable = []categoryKeywords{
	{CategoryTesting, []string{
		"jest", "mocha", "cypress", "selenium", "playwright", "junit", "pytest",
		"testing", "vitest", "testify", "rspec",
	}},
	{CategoryDatabase, []string{
		"sql", "postgres", "postgresql", "mysql", "mariadb", "mongodb", "mongo",
		"redis", "sqlite", "dynamodb", "cassandra", "elasticsearch", "oracle",
		"firebase", "firestore", "supabase", "database",
	}},
	{CategoryDevOps, []string{
		"docker", "kubernetes", "k8s", "aws", "azure", "gcp", "terraform",
		"ansible", "jenkins", "ci/cd", "cicd", "github actions", "gitlab ci",
		"nginx", "linux", "heroku", "vercel", "netlify", "cloudflare", "devops",
		"serverless", "lambda",
	}},
	{CategoryUIUX, []string{
		"figma", "sketch", "adobe xd", "photoshop", "illustrator", "ui", "ux",
		"design", "wireframe", "prototyping", "accessibility",
	}},
	{CategoryFramework, []string{
		"react", "angular", "vue", "svelte", "next", "nuxt", "node", "express",
		"nestjs", "django", "flask", "fastapi", "spring", "laravel", "rails",
		"fiber", "gin", "echo", "flutter", "tailwind", "bootstrap", "jquery",
		"redux", ".net", "pandas", "numpy", "tensorflow", "pytorch",
	}},
	{CategoryLanguage, []string{
		"javascript", "typescript", "python", "java", "golang", "go", "rust",
		"c++", "c#", "ruby", "php", "kotlin", "swift", "scala", "dart", "html",
		"css", "sass", "bash", "shell", "r", "matlab", "solidity",
	}},
	{CategoryTooling, []string{
		"git", "github", "gitlab", "webpack", "vite", "babel", "eslint",
		"prettier", "npm", "yarn", "pnpm", "postman", "jira", "vscode", "vim",
		"gradle", "maven", "make",
	}},
}

// InferCategory guesses a category from the cleaned name. Best effort:
// whole-word match against fixed keyword sets, first hit wins, Other as
// the fallback.
func InferCategory(name string) string {
	lowered := strings.ToLower(CleanName(name))
	if lowered == "" {
		return CategoryOther
	}
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.' || r == ','
	})

	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if kw == lowered {
				return entry.category
			}
			if strings.Contains(kw, " ") && strings.Contains(lowered, kw) {
				return entry.category
			}
			for _, w := range words {
				if w == kw {
					return entry.category
				}
			}
		}
	}
	return CategoryOther
}
