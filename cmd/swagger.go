// Package main
//
// @title           Gosat API
// @version         1.0
// @description     Validates CPFs, forwards lookups to the credit partner APIs and stores loan requests.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description Type "Bearer {token}" to authenticate.
package main
