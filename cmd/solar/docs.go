// Package main runs the solar storefront API.
//
// @title Solar Storefront API
// @version 1.0
// @description Catalog, quotes, orders and invoices of the solar storefront and its back office.
// @description
// @description Responses share one envelope: `{statusCode, message, data?, error?: {code, details?}}`.
// @description Back-office routes need the session cookie issued by `POST /auth/login` and a role grant.
//
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
// @description Signed session cookie (session=<token>) set by POST /auth/login.
package main
