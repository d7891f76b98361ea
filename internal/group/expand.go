// Package group implements the proxy-group member expander (spec §4.D):
// it resolves a group's declared member expressions against the
// normalized node list into a concrete, de-duplicated proxy name list.
package group

import (
	"regexp"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
)

// Expr is one parsed member-slot expression (spec §4.D's expression
// table), ready to be matched against a node list by Resolve.
type Expr struct {
	kind    exprKind
	literal string         // []NAME: the literal name itself
	groupRe *regexp.Regexp // !!GROUP=X: match against group
	groupID int            // !!GROUPID=N: match against group ID
	remarkRe *regexp.Regexp // optional trailing !!RE, or the bare regex-over-remark form
}

type exprKind int

const (
	exprLiteral exprKind = iota
	exprGroupName
	exprGroupID
	exprRemarkRegex
)

// ParseExpr parses one member-slot expression into an Expr (spec §4.D).
func ParseExpr(raw string) (Expr, error) {
	switch {
	case strings.HasPrefix(raw, "[]"):
		return Expr{kind: exprLiteral, literal: raw[2:]}, nil
	case strings.HasPrefix(raw, "!!GROUPID="):
		return parseGroupIDExpr(raw[len("!!GROUPID="):])
	case strings.HasPrefix(raw, "!!GROUP="):
		return parseGroupNameExpr(raw[len("!!GROUP="):])
	default:
		re, err := regexp.Compile(raw)
		if err != nil {
			return Expr{}, err
		}
		return Expr{kind: exprRemarkRegex, remarkRe: re}, nil
	}
}

func parseGroupNameExpr(rest string) (Expr, error) {
	groupPattern, remarkPattern, hasRemark := splitOnDoubleBang(rest)
	groupRe, err := regexp.Compile(groupPattern)
	if err != nil {
		return Expr{}, err
	}
	e := Expr{kind: exprGroupName, groupRe: groupRe}
	if hasRemark {
		remarkRe, err := regexp.Compile(remarkPattern)
		if err != nil {
			return Expr{}, err
		}
		e.remarkRe = remarkRe
	}
	return e, nil
}

func parseGroupIDExpr(rest string) (Expr, error) {
	idPart, remarkPattern, hasRemark := splitOnDoubleBang(rest)
	id := 0
	for _, c := range idPart {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int(c-'0')
	}
	e := Expr{kind: exprGroupID, groupID: id}
	if hasRemark {
		remarkRe, err := regexp.Compile(remarkPattern)
		if err != nil {
			return Expr{}, err
		}
		e.remarkRe = remarkRe
	}
	return e, nil
}

// splitOnDoubleBang splits "X!!RE" into ("X", "RE", true), or returns
// (raw, "", false) when there is no trailing "!!RE" clause.
func splitOnDoubleBang(raw string) (head, tail string, hasTail bool) {
	if idx := strings.Index(raw, "!!"); idx != -1 {
		return raw[:idx], raw[idx+2:], true
	}
	return raw, "", false
}

// Resolve matches one expression against the node list, returning the
// remarks it selects, in list order.
func (e Expr) Resolve(nodes []*node.Descriptor) []string {
	switch e.kind {
	case exprLiteral:
		return []string{e.literal}
	case exprGroupName:
		var out []string
		for _, n := range nodes {
			if e.groupRe.MatchString(n.Group) && (e.remarkRe == nil || e.remarkRe.MatchString(n.Remarks)) {
				out = append(out, n.Remarks)
			}
		}
		return out
	case exprGroupID:
		var out []string
		for _, n := range nodes {
			if n.GroupID == e.groupID && (e.remarkRe == nil || e.remarkRe.MatchString(n.Remarks)) {
				out = append(out, n.Remarks)
			}
		}
		return out
	case exprRemarkRegex:
		var out []string
		for _, n := range nodes {
			if e.remarkRe.MatchString(n.Remarks) {
				out = append(out, n.Remarks)
			}
		}
		return out
	default:
		return nil
	}
}

// Expand resolves every raw member expression of a group against nodes,
// de-duplicating while preserving first-seen order, and falls back to
// ["DIRECT"] when the result is empty (spec §4.D).
func Expand(rawExprs []string, nodes []*node.Descriptor) ([]string, error) {
	seen := make(map[string]bool)
	var resolved []string
	for _, raw := range rawExprs {
		expr, err := ParseExpr(raw)
		if err != nil {
			return nil, err
		}
		for _, name := range expr.Resolve(nodes) {
			if !seen[name] {
				seen[name] = true
				resolved = append(resolved, name)
			}
		}
	}
	if len(resolved) == 0 {
		return []string{"DIRECT"}, nil
	}
	return resolved, nil
}
