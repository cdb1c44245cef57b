package docs

import "github.com/swaggo/swag"

// @title           Task Management System API
// @version         1.0
// @description     Task management with user authentication and role-based access control

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Authentication
// @tag.description Credential verification and token issuance

// @tag.name Users
// @tag.description User management operations

// @tag.name Tasks
// @tag.description Task management operations

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
