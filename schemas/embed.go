// Package schemas holds the JSON Schemas of the artifacts written by af_prep.
package schemas

import _ "embed"

// JobDescriptorFile is the on-disk name of the job descriptor schema.
const JobDescriptorFile = "job_descriptor.schema.json"

// JobDescriptor is the embedded job descriptor schema.
//
//go:embed job_descriptor.schema.json
var JobDescriptor []byte
