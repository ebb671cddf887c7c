// Package core defines the domain types shared by every promptclass package:
// categories, ranked keywords, posterior entries and the per-prompt
// QueryResult, together with the outcome errors and their Status mapping.
package core
