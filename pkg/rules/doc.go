// Package rules holds the rule catalog and the matcher.
//
// The Store keeps rules in insertion order, which is also the order the
// pipeline evaluates them in: earlier-registered rules fire and mutate
// text before later ones. The Matcher is pure: it decides whether one
// rule fires against one text and reports the matched spans, with no
// side effects on the rule or the store.
package rules
