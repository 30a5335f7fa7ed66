package ast

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"
)

// FromJSON decodes a tree handed over by a parser. Every node is an object
// with a "kind" field, e.g.
//
//	{"kind": "binop", "op": "+", "left": {"kind": "int", "value": 1}, "right": {"kind": "var", "name": "x"}}
func FromJSON(data []byte) (Ast, error) {
	vdata, vtype, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	return parseNode(vdata, vtype)
}

// FromYAML accepts the same document shape as FromJSON, written as YAML.
func FromYAML(data []byte) (Ast, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	return FromJSON(js)
}

func malformed(kind, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedTree, kind, fmt.Sprintf(format, args...))
}

func parseNode(data []byte, vtype jsonparser.ValueType) (Ast, error) {
	if vtype != jsonparser.Object {
		return nil, fmt.Errorf("%w: expected an object but got: %s", ErrMalformedTree, vtype)
	}
	kind, err := jsonparser.GetString(data, "kind")
	if err != nil {
		return nil, fmt.Errorf("%w: node without a kind: '%s'", ErrMalformedTree, string(data))
	}
	switch kind {
	case "int":
		n, err := jsonparser.GetInt(data, "value")
		if err != nil {
			return nil, malformed(kind, "value is not an integer: %v", err)
		}
		return MakeInt(n), nil
	case "bool":
		b, err := jsonparser.GetBoolean(data, "value")
		if err != nil {
			return nil, malformed(kind, "value is not a boolean: %v", err)
		}
		return MakeBool(b), nil
	case "null":
		return MakeNull(), nil
	case "var":
		name, err := getName(kind, data)
		if err != nil {
			return nil, err
		}
		return Var{Name: name}, nil
	case "print":
		operand, err := child(kind, data, "expr")
		if err != nil {
			return nil, err
		}
		return Print{Operand: operand}, nil
	case "binop":
		op, err := jsonparser.GetString(data, "op")
		if err != nil {
			return nil, malformed(kind, "missing op")
		}
		left, err := child(kind, data, "left")
		if err != nil {
			return nil, err
		}
		right, err := child(kind, data, "right")
		if err != nil {
			return nil, err
		}
		return Binary{Left: left, Op: op, Right: right}, nil
	case "if":
		cond, err := child(kind, data, "cond")
		if err != nil {
			return nil, err
		}
		thenDo, err := child(kind, data, "then")
		if err != nil {
			return nil, err
		}
		elseDo, err := optionalChild(kind, data, "else")
		if err != nil {
			return nil, err
		}
		return IfElse{Condition: cond, ThenDo: thenDo, ElseDo: elseDo}, nil
	case "while":
		cond, err := child(kind, data, "cond")
		if err != nil {
			return nil, err
		}
		body, err := child(kind, data, "body")
		if err != nil {
			return nil, err
		}
		return While{Condition: cond, Body: body}, nil
	case "seq":
		first, err := child(kind, data, "first")
		if err != nil {
			return nil, err
		}
		second, err := child(kind, data, "second")
		if err != nil {
			return nil, err
		}
		return Seq{First: first, Second: second}, nil
	case "var_decl":
		name, err := getName(kind, data)
		if err != nil {
			return nil, err
		}
		init, err := child(kind, data, "init")
		if err != nil {
			return nil, err
		}
		return VarDecl{Name: name, Init: init}, nil
	case "assign":
		name, err := getName(kind, data)
		if err != nil {
			return nil, err
		}
		expr, err := child(kind, data, "expr")
		if err != nil {
			return nil, err
		}
		return Assign{Name: name, Expr: expr}, nil
	case "function":
		params, err := getParams(kind, data)
		if err != nil {
			return nil, err
		}
		body, err := child(kind, data, "body")
		if err != nil {
			return nil, err
		}
		return FuncDecl{Params: params, Body: body}, nil
	case "call":
		fn, err := child(kind, data, "fn")
		if err != nil {
			return nil, err
		}
		args, err := getArgs(kind, data)
		if err != nil {
			return nil, err
		}
		return FuncCall{Fn: fn, Args: args}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind: '%s'", ErrMalformedTree, kind)
	}
}

func getName(kind string, data []byte) (string, error) {
	name, err := jsonparser.GetString(data, "name")
	if err != nil {
		return "", malformed(kind, "missing name")
	}
	return name, nil
}

func child(kind string, data []byte, key string) (Ast, error) {
	vdata, vtype, _, err := jsonparser.Get(data, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || vtype == jsonparser.Null {
		return nil, malformed(kind, "missing '%s'", key)
	}
	if err != nil {
		return nil, malformed(kind, "'%s': %v", key, err)
	}
	return parseNode(vdata, vtype)
}

func optionalChild(kind string, data []byte, key string) (Ast, error) {
	_, vtype, _, err := jsonparser.Get(data, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || vtype == jsonparser.Null {
		return nil, nil
	}
	return child(kind, data, key)
}

func getParams(kind string, data []byte) ([]string, error) {
	params := make([]string, 0)
	var inner error
	_, err := jsonparser.ArrayEach(data, func(value []byte, vtype jsonparser.ValueType, _ int, _ error) {
		if inner != nil {
			return
		}
		if vtype != jsonparser.String {
			inner = malformed(kind, "parameter is not a string: '%s'", string(value))
			return
		}
		name, err := jsonparser.ParseString(value)
		if err != nil {
			inner = malformed(kind, "parameter: %v", err)
			return
		}
		params = append(params, name)
	}, "params")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return params, nil
	}
	if err != nil {
		return nil, malformed(kind, "params: %v", err)
	}
	return params, inner
}

func getArgs(kind string, data []byte) ([]Ast, error) {
	args := make([]Ast, 0)
	var inner error
	_, err := jsonparser.ArrayEach(data, func(value []byte, vtype jsonparser.ValueType, _ int, _ error) {
		if inner != nil {
			return
		}
		arg, err := parseNode(value, vtype)
		if err != nil {
			inner = err
			return
		}
		args = append(args, arg)
	}, "args")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return args, nil
	}
	if err != nil {
		return nil, malformed(kind, "args: %v", err)
	}
	return args, inner
}
