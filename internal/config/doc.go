// Package config provides configuration parsing for mdom projects.
//
// The configuration is stored in mdom.json at the project root, or in
// mdom.yaml with the same keys when no mdom.json exists. This package
// handles loading, saving, and validating configuration.
//
// store.kind selects the document store: "file" (the default, rooted at
// store.dir), "sqlite" (the database at store.path, default mdom.db) or
// "s3".
//
// # Configuration File Structure
//
//	{
//	  "document": "index.html",
//	  "store": {
//	    "kind": "s3",
//	    "bucket": "pages",
//	    "prefix": "site/",
//	    "region": "eu-west-1",
//	    "endpoint": "http://localhost:9000",
//	    "pathStyle": true
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metrics": true
//	  },
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  },
//	  "tracing": {
//	    "tracerName": "mdom"
//	  },
//	  "metrics": {
//	    "namespace": "mdom"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Serving on", cfg.Address())
package config
