// Package config loads keyword category files.
//
// A keyword file is a JSON or YAML document whose top-level objects holding a
// "positives" list are categories. A handful of reserved top-level keys tune
// the engine:
//
//	{
//	  "python":  {"positives": ["python", "Flask"]},
//	  "cpp":     {"positives": ["cpp", "c++"]},
//	  "weights": {"python": 1.0, "cpp": 1.0},
//	  "threshold": 0.2,
//	  "boost_factor": 0.5,
//	  "apply_threshold": false,
//	  "boost_categories": ["cpp"],
//	  "clamp": false
//	}
//
// Scalar settings can be overridden from the environment with the
// PROMPTCLASS_ prefix, e.g. PROMPTCLASS_THRESHOLD=0.3.
package config
