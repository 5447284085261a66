// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeProbe,
//	    "failed to query GPU state",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "command": "nvidia-smi",
//	        "probe": probeName,
//	    },
//	)
package errors
