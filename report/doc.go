// Package report serializes shape selection results.
//
// A Report lists every candidate with its coefficients, R², RMSE and model trace,
// names the best fit, and carries the raw-data trace of the observations. Reports
// are written as JSON or YAML and optionally compressed with any codec from the
// compress package:
//
//	rep, err := report.New(result)
//	if err != nil {
//	    return err
//	}
//	if _, err := report.Write(f, rep, format.EncodingJSON, format.CompressionZstd); err != nil {
//	    return err
//	}
package report
