package diag

import (
	"fmt"
)

// Code identifies a diagnostic class. Codes are grouped per phase.
type Code uint16

const (
	UnknownCode Code = 0

	// Load phase.
	LoadInfo             Code = 1000
	LoadDegenerateAlias  Code = 1001
	LoadUnknownPrimitive Code = 1002
	LoadBadSchema        Code = 1003
	LoadMalformedDecl    Code = 1004
	LoadDuplicatePath    Code = 1005

	// Annotation transfer.
	AnnInfo             Code = 2000
	AnnTransferConflict Code = 2001
	AnnTargetOccupied   Code = 2002
	AnnTargetMissing    Code = 2003

	// Generation.
	GenInfo          Code = 3000
	GenMissingRoot   Code = 3001
	GenUnresolvedRef Code = 3002
	GenCfgNoDefine   Code = 3003
)

func (c Code) String() string {
	return fmt.Sprintf("B%04d", uint16(c))
}
