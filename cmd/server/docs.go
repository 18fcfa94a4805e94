package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Tradelog API
// @version         0.1.0
// @description     Execution import, trade reconciliation, and P&L analytics.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
