// Package manifest loads the bundler's build manifest: a flat mapping from an
// original asset path to its versioned (content-hashed) path.
//
// # Manifest Format
//
// The canonical file is mix-manifest.json inside the public directory:
//
//	{
//	  "/js/app.js": "/js/app.js?id=a1b2c3",
//	  "/css/app.css": "/css/app.3f9e.css"
//	}
//
// JSON input may carry comments. YAML manifests with the
// same shape are accepted when the file extension is .yaml or .yml.
//
// # Usage
//
//	loader := manifest.NewLoader()
//	m, err := loader.Load(manifest.PathIn("dist"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	versioned, ok := m.Lookup("js/app.js")
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrFileNotFound: manifest file does not exist
//   - ErrInvalidFormat: file is not a JSON/YAML object of strings
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrEmptyManifest: manifest parsed but holds no entries
package manifest
