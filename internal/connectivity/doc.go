// Package connectivity verifies that a remote endpoint is reachable by issuing
// an HTTP HEAD request through whichever of curl or wget is installed.
package connectivity
