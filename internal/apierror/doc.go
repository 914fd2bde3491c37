// Package apierror classifies errors returned by the hosted scraping service
// and its HTTP transport. It centralizes the checks so callers decide about
// retries and exit codes without matching strings themselves.
package apierror
