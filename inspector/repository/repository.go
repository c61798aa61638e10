package repository

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Build system of the project (gradle, maven, git, unknown)
	RelativePath string // Slash separated path from project root to the inspected location
}
