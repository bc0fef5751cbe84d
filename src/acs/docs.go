// Package main acs API
//
// @title           acs API
// @version         1.0
// @description     Account console REST API - register accounts, verify credentials, manage roles and the store schema.
//
// @host            localhost:8080
// @BasePath        /
// @schemes         http
package main
