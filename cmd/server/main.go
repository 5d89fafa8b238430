package main

import (
	_ "kpi-dashboard/docs" // Swagger docs
)

// @title KPI Dashboard API
// @version 1.0
// @description Employee goals, performance reviews and KPI scores

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	execute()
}
