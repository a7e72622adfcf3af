// Package common holds helpers shared by services.
//
// It detects the current system actor (hostname/username) recorded in session reports.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
