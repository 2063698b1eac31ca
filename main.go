/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/textwaves/censor-api/cmd"

// @title           TextWaves Censor API
// @version         1.0.0
// @description     Video subtitle and profanity censoring API with live progress reporting
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/textwaves/censor-api
// @contact.email   support@example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  OwnerAuth
// @in                          header
// @name                        X-Owner-ID
// @description                 Owner identity header scoping video history
func main() {
	cmd.Execute()
}
