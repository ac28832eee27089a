// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The dataset service turns a file into a cached Dataset; the query
// service filters and summarises it. Trend, WriteCSV and ExportFileName
// shape query results for presentation.
package services
