// Package schema holds the gohcl decoding targets for host configuration files.
package schema

import (
	"github.com/zclconf/go-cty/cty"
)

// Library represents a `library` block naming a plugin library to open.
type Library struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// Capability represents a `capability` block: one class of a library,
// requested through a named interface.
type Capability struct {
	Name      string     `hcl:"name,label"`
	Library   string     `hcl:"library"`
	Class     string     `hcl:"class"`
	Interface string     `hcl:"interface,optional"`
	Optional  bool       `hcl:"optional,optional"`
	Settings  *cty.Value `hcl:"settings,optional"`
}

// Publish represents the `publish` block configuring inventory publishing.
type Publish struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event,optional"`
	AckEvent           string `hcl:"ack_event,optional"`
	Timeout            string `hcl:"timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// File represents the top-level structure of a host configuration file.
type File struct {
	Libraries    []*Library    `hcl:"library,block"`
	Capabilities []*Capability `hcl:"capability,block"`
	Publish      []*Publish    `hcl:"publish,block"`
}
