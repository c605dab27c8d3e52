package model

import "fmt"

// DeclarationKind identifies the keyword that introduced a declaration.
type DeclarationKind int

const (
	KindInvalid DeclarationKind = iota

	// Singletons: at most one value per description.
	KindArchName  // AC_ARCH(name)
	KindISAFile   // ac_isa("file")
	KindEndian    // set_endian("big")
	KindWordSize  // ac_wordsize 32
	KindFetchSize // ac_fetchsize 32
	KindHelper    // ac_helper { ... };

	// Repeated-named: one name -> declaration table per kind.
	KindReg          // ac_reg
	KindRegBank      // ac_regbank
	KindMem          // ac_mem
	KindCache        // ac_cache
	KindICache       // ac_icache
	KindDCache       // ac_dcache
	KindTLMPort      // ac_tlm_port
	KindTLMIntrPort  // ac_tlm_intr_port
	KindStage        // ac_stage
	KindPipe         // ac_pipe
	KindFormat       // ac_format
	KindGroup        // ac_group
	KindAsmMap       // ac_asm_map
	KindPseudo       // pseudo_instr
	KindBind         // x.bindsTo(y)
	numDeclarationKinds
)

var kindKeywords = [...]string{
	KindInvalid:     "invalid",
	KindArchName:    "AC_ARCH",
	KindISAFile:     "ac_isa",
	KindEndian:      "set_endian",
	KindWordSize:    "ac_wordsize",
	KindFetchSize:   "ac_fetchsize",
	KindHelper:      "ac_helper",
	KindReg:         "ac_reg",
	KindRegBank:     "ac_regbank",
	KindMem:         "ac_mem",
	KindCache:       "ac_cache",
	KindICache:      "ac_icache",
	KindDCache:      "ac_dcache",
	KindTLMPort:     "ac_tlm_port",
	KindTLMIntrPort: "ac_tlm_intr_port",
	KindStage:       "ac_stage",
	KindPipe:        "ac_pipe",
	KindFormat:      "ac_format",
	KindGroup:       "ac_group",
	KindAsmMap:      "ac_asm_map",
	KindPseudo:      "pseudo_instr",
	KindBind:        "bindsTo",
}

// Keyword returns the source keyword for the kind.
func (k DeclarationKind) Keyword() string {
	if k >= 0 && int(k) < len(kindKeywords) {
		return kindKeywords[k]
	}
	return fmt.Sprintf("DeclarationKind(%d)", int(k))
}

func (k DeclarationKind) String() string {
	return k.Keyword()
}

// IsSingleton is true for kinds that hold a single value per description.
func (k DeclarationKind) IsSingleton() bool {
	return k >= KindArchName && k <= KindHelper
}

// IsRepeated is true for kinds stored in a name -> declaration table.
func (k DeclarationKind) IsRepeated() bool {
	return k >= KindReg && k < numDeclarationKinds
}

// RepeatedKinds lists every repeated-named kind in declaration order.
func RepeatedKinds() []DeclarationKind {
	kinds := make([]DeclarationKind, 0, numDeclarationKinds-KindReg)
	for k := KindReg; k < numDeclarationKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// SingletonKinds lists every singleton kind.
func SingletonKinds() []DeclarationKind {
	kinds := make([]DeclarationKind, 0, KindHelper)
	for k := KindArchName; k <= KindHelper; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindForKeyword maps a source keyword back to its kind. Both spellings of
// the bind relation are accepted.
func KindForKeyword(keyword string) (DeclarationKind, bool) {
	if keyword == "bindTo" {
		return KindBind, true
	}
	for k := KindArchName; k < numDeclarationKinds; k++ {
		if kindKeywords[k] == keyword {
			return k, true
		}
	}
	return KindInvalid, false
}

// AttributeKind identifies a free-text instruction clause.
type AttributeKind int

const (
	AttrIsJump AttributeKind = iota
	AttrIsBranch
	AttrDelay
	AttrDelayCondition
	AttrCondition
	AttrBehavior
	numAttributeKinds
)

var attributeKeywords = [...]string{
	AttrIsJump:         "is_jump",
	AttrIsBranch:       "is_branch",
	AttrDelay:          "delay",
	AttrDelayCondition: "delay_cond",
	AttrCondition:      "cond",
	AttrBehavior:       "behavior",
}

var attributeLabels = [...]string{
	AttrIsJump:         "Is Jump",
	AttrIsBranch:       "Is Branch",
	AttrDelay:          "Delay",
	AttrDelayCondition: "Delay Condition",
	AttrCondition:      "Condition",
	AttrBehavior:       "Behavior",
}

// Keyword returns the method name used in the ISA file.
func (a AttributeKind) Keyword() string {
	if a >= 0 && a < numAttributeKinds {
		return attributeKeywords[a]
	}
	return fmt.Sprintf("AttributeKind(%d)", int(a))
}

// Label returns the human readable label used on rendered pages.
func (a AttributeKind) Label() string {
	if a >= 0 && a < numAttributeKinds {
		return attributeLabels[a]
	}
	return a.Keyword()
}

func (a AttributeKind) String() string {
	return a.Keyword()
}

// AttributeKinds lists the attribute kinds in rendering order.
func AttributeKinds() []AttributeKind {
	return []AttributeKind{AttrIsJump, AttrIsBranch, AttrDelay, AttrCondition, AttrDelayCondition, AttrBehavior}
}

// AttributeKindForKeyword maps an ISA method name to its attribute kind.
func AttributeKindForKeyword(keyword string) (AttributeKind, bool) {
	for a := AttrIsJump; a < numAttributeKinds; a++ {
		if attributeKeywords[a] == keyword {
			return a, true
		}
	}
	return 0, false
}
