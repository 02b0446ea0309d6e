// Package printing contains the print geometry model of the executive summary.
// It describes the physical sheet a PRINT rendering is laid out on: paper size,
// orientation and margins, all expressed in millimeters.
package printing
