// Package templates provides project scaffolding for mdom init.
//
// A template is a set of files rendered with text/template and written
// into a directory. Every template writes mdom.json; file-store templates
// also write the starting document.
//
// # Available Templates
//
//   - blank: an empty page with a #app mount point
//   - list: a page with a list to append to, plus a README of commands
//   - s3: mdom.json for a bucket-backed store; the document lives in S3
//
// # Usage
//
//	tmpl, err := templates.Get("list")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = tmpl.Create(dir, templates.Config{Title: "Groceries"})
//
// # Template Variables
//
//	{{.Title}}      page title, HTML-escaped where it lands in markup
//	{{.Document}}   document name, default index.html
//	{{.Port}}       live server port
//	{{.Bucket}}     S3 bucket (s3 template)
//	{{.Region}}     S3 region (s3 template)
//	{{.Prefix}}     S3 key prefix (s3 template)
package templates
