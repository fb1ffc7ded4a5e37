package rawhttp

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// ToRequestNode converts a RequestLine, its headers and body into a generic
// ast.SchemaNode, mirroring the teacher's RequestToNode but against this
// package's RequestLine/RawHttpHeaders types instead of its flat Request.
func ToRequestNode(rl RequestLine, headers RawHttpHeaders, body []byte) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(rl.Method, zeroPos),
		"target":  ast.NewLiteralNode(rl.Uri.String(), zeroPos),
		"version": ast.NewLiteralNode(rl.HttpVersion.String(), zeroPos),
		"headers": headersToNode(headers),
	}
	if body != nil {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ToResponseNode is ToRequestNode's status-line counterpart.
func ToResponseNode(sl StatusLine, headers RawHttpHeaders, body []byte) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", zeroPos),
		"version":    ast.NewLiteralNode(sl.HttpVersion.String(), zeroPos),
		"statusCode": ast.NewLiteralNode(int64(sl.StatusCode), zeroPos),
		"reason":     ast.NewLiteralNode(sl.ReasonPhrase, zeroPos),
		"headers":    headersToNode(headers),
	}
	if body != nil {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

func headersToNode(headers RawHttpHeaders) ast.SchemaNode {
	elements := make([]ast.SchemaNode, 0, headers.Len())
	headers.Each(func(name, value string) {
		elements = append(elements, ast.NewObjectNode(map[string]ast.SchemaNode{
			"name":  ast.NewLiteralNode(name, zeroPos),
			"value": ast.NewLiteralNode(value, zeroPos),
		}, zeroPos))
	})
	return ast.NewArrayDataNode(elements, zeroPos)
}

// FromRequestNode reverses ToRequestNode, re-parsing the recovered target
// string through the URI parser under opts so the round trip exercises the
// same leniency rules a fresh parse would.
func FromRequestNode(node ast.SchemaNode, opts Options) (RequestLine, RawHttpHeaders, []byte, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return RequestLine{}, RawHttpHeaders{}, nil, fmt.Errorf("rawhttp: FromRequestNode: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	method := literalString(props["method"])
	target := literalString(props["target"])
	versionTok := literalString(props["version"])

	u, err := parseTarget(target, opts)
	if err != nil {
		return RequestLine{}, RawHttpHeaders{}, nil, requestTargetError(err, 0)
	}
	version, ok := parseVersion(versionTok)
	if !ok {
		return RequestLine{}, RawHttpHeaders{}, nil, newInvalidRequest("Unknown HTTP version", 0)
	}

	headers, err := nodeToHeaders(props["headers"])
	if err != nil {
		return RequestLine{}, RawHttpHeaders{}, nil, err
	}

	var body []byte
	if b, ok := props["body"]; ok {
		body = []byte(literalString(b))
	}

	return RequestLine{Method: method, Uri: u, HttpVersion: version}, headers, body, nil
}

// FromResponseNode reverses ToResponseNode.
func FromResponseNode(node ast.SchemaNode) (StatusLine, RawHttpHeaders, []byte, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return StatusLine{}, RawHttpHeaders{}, nil, fmt.Errorf("rawhttp: FromResponseNode: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	versionTok := literalString(props["version"])
	version, ok := parseVersion(versionTok)
	if !ok {
		return StatusLine{}, RawHttpHeaders{}, nil, newInvalidRequest("Unknown HTTP version", 0)
	}

	code := 0
	if lit, ok := props["statusCode"].(*ast.LiteralNode); ok {
		switch v := lit.Value().(type) {
		case int64:
			code = int(v)
		case float64:
			code = int(v)
		}
	}
	reason := literalString(props["reason"])

	headers, err := nodeToHeaders(props["headers"])
	if err != nil {
		return StatusLine{}, RawHttpHeaders{}, nil, err
	}

	var body []byte
	if b, ok := props["body"]; ok {
		body = []byte(literalString(b))
	}

	return StatusLine{HttpVersion: version, StatusCode: code, ReasonPhrase: reason}, headers, body, nil
}

func nodeToHeaders(node ast.SchemaNode) (RawHttpHeaders, error) {
	if node == nil {
		return RawHttpHeaders{}, nil
	}
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return RawHttpHeaders{}, fmt.Errorf("rawhttp: expected ArrayDataNode for headers, got %T", node)
	}
	b := &Builder{}
	for _, elem := range arr.Elements() {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		b.With(literalString(props["name"]), literalString(props["value"]))
	}
	return b.Build(), nil
}

func literalString(node ast.SchemaNode) string {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return ""
	}
	s, _ := lit.Value().(string)
	return s
}

// Render re-serializes a node produced by ToRequestNode/ToResponseNode back
// to wire bytes, dispatching on its "type" property the same way the
// teacher's package-level Render does.
func Render(node ast.SchemaNode, opts Options) ([]byte, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("rawhttp: Render: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()
	typeLit, ok := props["type"].(*ast.LiteralNode)
	if !ok {
		return nil, fmt.Errorf("rawhttp: Render: missing 'type' property")
	}
	msgType, _ := typeLit.Value().(string)

	switch msgType {
	case "request":
		rl, headers, body, err := FromRequestNode(node, opts)
		if err != nil {
			return nil, fmt.Errorf("rawhttp: Render: %w", err)
		}
		return marshalMessage(rl.String(), headers, body), nil
	case "response":
		sl, headers, body, err := FromResponseNode(node)
		if err != nil {
			return nil, fmt.Errorf("rawhttp: Render: %w", err)
		}
		return marshalMessage(sl.String(), headers, body), nil
	default:
		return nil, fmt.Errorf("rawhttp: Render: unknown message type %q", msgType)
	}
}

func marshalMessage(startLine string, headers RawHttpHeaders, body []byte) []byte {
	var buf []byte
	buf = append(buf, startLine...)
	buf = append(buf, "\r\n"...)
	buf = append(buf, headers.String()...)
	buf = append(buf, "\r\n"...)
	buf = append(buf, body...)
	return buf
}
