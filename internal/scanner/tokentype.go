package scanner

import "fmt"

// TokenRole is the coarse grammatical role of a line's first token.
type TokenRole int

const (
	RoleUnknown TokenRole = iota
	RoleOperator
	RoleDirective
	RoleLabelDef
	RoleVariableDef
)

var roleDescription = map[TokenRole]string{
	RoleUnknown:    "unknown",
	RoleOperator:   "operator",
	RoleDirective:  "directive",
	RoleLabelDef:   "label-def",
	RoleVariableDef: "variable-def",
}

func (r TokenRole) String() string {
	if s, ok := roleDescription[r]; ok {
		return s
	}
	return fmt.Sprintf("TokenRole(%d)", int(r))
}

func (r TokenRole) GoString() string {
	return "scanner." + r.String()
}

func init() {
	for r := RoleUnknown; r <= RoleVariableDef; r++ {
		if _, ok := roleDescription[r]; !ok {
			panic(fmt.Sprintf("scanner: TokenRole %d has no description", int(r)))
		}
	}
}

// OperatorKind buckets a mnemonic into the families the structural checker
// and metrics calculator react to.
type OperatorKind int

const (
	OpOther OperatorKind = iota
	OpBranch
	OpLoad
	OpStore
	OpMove
	OpCompare
	OpPush
	OpPop
	OpSupervisorCall
	OpUnwanted
)

var operatorKindDescription = map[OperatorKind]string{
	OpOther:          "other",
	OpBranch:         "branch",
	OpLoad:           "load",
	OpStore:          "store",
	OpMove:           "move",
	OpCompare:        "compare",
	OpPush:           "push",
	OpPop:            "pop",
	OpSupervisorCall: "supervisor-call",
	OpUnwanted:       "unwanted",
}

func (k OperatorKind) String() string {
	if s, ok := operatorKindDescription[k]; ok {
		return s
	}
	return fmt.Sprintf("OperatorKind(%d)", int(k))
}

func (k OperatorKind) GoString() string {
	return "scanner." + k.String()
}

func init() {
	for k := OpOther; k <= OpUnwanted; k++ {
		if _, ok := operatorKindDescription[k]; !ok {
			panic(fmt.Sprintf("scanner: OperatorKind %d has no description", int(k)))
		}
	}
}

// BranchVariant distinguishes the three spelled-out branch mnemonics from
// every other token that merely starts with b/B (conditional branches like
// beq, bne, ...).
type BranchVariant int

const (
	BranchOther BranchVariant = iota
	BranchPlain
	BranchLink
	BranchExchange
)

var branchVariantDescription = map[BranchVariant]string{
	BranchOther:    "other",
	BranchPlain:    "plain",
	BranchLink:     "link",
	BranchExchange: "exchange",
}

func (b BranchVariant) String() string {
	if s, ok := branchVariantDescription[b]; ok {
		return s
	}
	return fmt.Sprintf("BranchVariant(%d)", int(b))
}

func (b BranchVariant) GoString() string {
	return "scanner." + b.String()
}

func init() {
	for b := BranchOther; b <= BranchExchange; b++ {
		if _, ok := branchVariantDescription[b]; !ok {
			panic(fmt.Sprintf("scanner: BranchVariant %d has no description", int(b)))
		}
	}
}

// AddressingMode is the operand-shape bucket assigned to a load/store line.
type AddressingMode int

const (
	AddrUnsure AddressingMode = iota
	AddrIndirect
	AddrIndirectWithOffset
	AddrPreIndex
	AddrPostIndex
	AddrPCRelative
	AddrPCLiteral
)

var addressingModeDescription = map[AddressingMode]string{
	AddrUnsure:             "unsure",
	AddrIndirect:           "indirect",
	AddrIndirectWithOffset: "indirect-with-offset",
	AddrPreIndex:           "pre-index",
	AddrPostIndex:          "post-index",
	AddrPCRelative:         "pc-relative",
	AddrPCLiteral:          "pc-literal",
}

func (m AddressingMode) String() string {
	if s, ok := addressingModeDescription[m]; ok {
		return s
	}
	return fmt.Sprintf("AddressingMode(%d)", int(m))
}

func (m AddressingMode) GoString() string {
	return "scanner." + m.String()
}

func init() {
	for m := AddrUnsure; m <= AddrPCLiteral; m++ {
		if _, ok := addressingModeDescription[m]; !ok {
			panic(fmt.Sprintf("scanner: AddressingMode %d has no description", int(m)))
		}
	}
}
