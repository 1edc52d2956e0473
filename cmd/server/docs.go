package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Rent Adjustment API
// @version         0.1.0
// @description     Eligibility checks, adjustment calculation, approval lifecycle, and compliance reports.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
