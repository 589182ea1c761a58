package fuzzy

// Antecedent is a condition tree over fuzzified inputs. The three variants
// are a leaf term (variable is set), a conjunction (min of children) and a
// disjunction (max of children). Trees are built with Is, And and Or and
// validated when the engine is constructed.
type Antecedent interface {
	isAntecedent()
}

type term struct {
	variable string
	set      string
}

type andNode struct {
	children []Antecedent
}

type orNode struct {
	children []Antecedent
}

func (term) isAntecedent()    {}
func (andNode) isAntecedent() {}
func (orNode) isAntecedent()  {}

// Is returns a leaf condition "variable is set".
func Is(variable, set string) Antecedent {
	return term{variable: variable, set: set}
}

// And returns a conjunction evaluated as the minimum of its children.
func And(children ...Antecedent) Antecedent {
	return andNode{children: children}
}

// Or returns a disjunction evaluated as the maximum of its children.
func Or(children ...Antecedent) Antecedent {
	return orNode{children: children}
}

// evalAntecedent reduces a condition tree against fuzzified inputs,
// indexed as degrees[variable][set]. Trees are validated at engine
// construction, so lookups here cannot miss.
func evalAntecedent(a Antecedent, degrees map[string]map[string]float64) float64 {
	switch n := a.(type) {
	case term:
		return degrees[n.variable][n.set]
	case andNode:
		d := evalAntecedent(n.children[0], degrees)
		for _, c := range n.children[1:] {
			if cd := evalAntecedent(c, degrees); cd < d {
				d = cd
			}
		}
		return d
	case orNode:
		d := evalAntecedent(n.children[0], degrees)
		for _, c := range n.children[1:] {
			if cd := evalAntecedent(c, degrees); cd > d {
				d = cd
			}
		}
		return d
	default:
		return 0
	}
}

// Rule is one IF-THEN rule: an antecedent tree, the name of an output set
// it concludes, and a weight scaling its firing strength. Rules are
// immutable once the engine is built.
type Rule struct {
	Label      string
	Antecedent Antecedent
	Consequent string
	Weight     float64
}

// NewRule creates a rule with weight 1.0.
func NewRule(label string, antecedent Antecedent, consequent string) Rule {
	return Rule{Label: label, Antecedent: antecedent, Consequent: consequent, Weight: 1.0}
}

// Weighted returns a copy of the rule with the given weight.
func (r Rule) Weighted(w float64) Rule {
	r.Weight = w
	return r
}
