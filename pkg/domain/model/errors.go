package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrProjectNotFound = goerr.New("project not found")
)

// Error tags for categorization
var (
	ErrTagValidation = goerr.NewTag("validation")
)
