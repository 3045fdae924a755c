package http

// Test-only accessors
var StatusOf = statusOf
