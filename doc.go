// Package jsonnode provides a lenient JSON document engine: a single-pass
// parser, a mutable ordered document tree, a text serializer with compact
// and indented output, and a compact tagged binary encoding.
//
// The package uses an internal package for implementation details:
//
//   - internal: path parsing, the LRU parse cache, Prometheus collectors
//     and pooled buffers
//
// # Basic Usage
//
// Parse text and read values. Reads never fail; a missing or mistyped value
// reads as "", 0 or false:
//
//	root, err := jsonnode.Parse(`{"user":{"name":"Ann","tags":["a","b"]}}`)
//	name := root.Get("user").Get("name").Text()
//	first := root.GetPath("user.tags[0]").Text()
//
// Write through a Ref. Missing containers are created on assignment only:
//
//	cfg := jsonnode.NewObject()
//	err = cfg.Key("server").Key("ports").Index(2).SetInt(8080)
//	// {"server":{"ports":[null,null,8080]}}
//
// Serialize:
//
//	compact := root.String()
//	pretty := root.Indent(2)
//	data := jsonnode.EncodeBinary(root)
//	back, err := jsonnode.DecodeBinary(data)
//
// # Configuration
//
// Flags such as ForceASCII and AllowLineComments live in a Config that is
// passed explicitly, either to a Processor or to the *WithConfig functions:
//
//	p := jsonnode.New(jsonnode.ASCIIConfig())
//	defer p.Close()
//	text := p.ToText(root, jsonnode.Indent)
//
// # Concurrency
//
// A Processor is safe for concurrent use. Trees are not; give each
// goroutine its own Clone.
package jsonnode
