package sui

import "github.com/anchorageoss/visualsign-parser/internal/chainerr"

// ObjectID is a 32-byte Sui object/package/address identifier.
type ObjectID [32]byte

// ObjectRef identifies a specific version of an object: its id, sequence
// number, and content digest.
type ObjectRef struct {
	ID       ObjectID
	Version  uint64
	Digest   [32]byte
}

// SharedObjectRef identifies a shared object by id and the version at
// which it first became shared, plus whether this transaction takes it
// mutably.
type SharedObjectRef struct {
	ID                   ObjectID
	InitialSharedVersion uint64
	Mutable              bool
}

// ObjectArgKind discriminates ObjectArg's three BCS variants.
type ObjectArgKind uint8

const (
	ObjectArgImmOrOwned ObjectArgKind = 0
	ObjectArgShared     ObjectArgKind = 1
	ObjectArgReceiving  ObjectArgKind = 2
)

// ObjectArg is one CallArg's Object(...) payload.
type ObjectArg struct {
	Kind   ObjectArgKind
	Owned  ObjectRef       // set when Kind == ObjectArgImmOrOwned or ObjectArgReceiving
	Shared SharedObjectRef // set when Kind == ObjectArgShared
}

// CallArgKind discriminates CallArg's two BCS variants.
type CallArgKind uint8

const (
	CallArgPure   CallArgKind = 0
	CallArgObject CallArgKind = 1
)

// CallArg is one entry of a ProgrammableTransaction's inputs list: either a
// raw BCS-encoded pure value or an object reference.
type CallArg struct {
	Kind   CallArgKind
	Pure   []byte
	Object ObjectArg
}

// ArgumentKind discriminates Argument's four BCS variants: a reference
// into the inputs list, a prior command's result, one element of a prior
// command's result tuple, or the gas coin.
type ArgumentKind uint8

const (
	ArgumentGasCoin      ArgumentKind = 0
	ArgumentInput        ArgumentKind = 1
	ArgumentResult       ArgumentKind = 2
	ArgumentNestedResult ArgumentKind = 3
)

// Argument references an input or a previous command's output.
type Argument struct {
	Kind        ArgumentKind
	InputIndex  uint16 // Kind == ArgumentInput
	ResultIndex uint16 // Kind == ArgumentResult or ArgumentNestedResult
	NestedIndex uint16 // Kind == ArgumentNestedResult
}

// TypeTagKind discriminates the TypeTag enum used for generic type
// arguments. Vector and Struct recurse; MaxTypeTagDepth bounds that
// recursion the same way chain/evm/abi.MaxDepth bounds ABI type nesting.
type TypeTagKind uint8

const (
	TypeTagBool TypeTagKind = iota
	TypeTagU8
	TypeTagU64
	TypeTagU128
	TypeTagAddress
	TypeTagSigner
	TypeTagVector
	TypeTagStruct
	TypeTagU16
	TypeTagU32
	TypeTagU256
)

// MaxTypeTagDepth bounds TypeTag recursion (Vector/Struct type params).
const MaxTypeTagDepth = 16

// StructTag names a Move struct type: its defining package address,
// module, name, and generic type parameters.
type StructTag struct {
	Address    ObjectID
	Module     string
	Name       string
	TypeParams []TypeTag
}

// TypeTag is a Move type appearing as a command's generic type argument.
type TypeTag struct {
	Kind   TypeTagKind
	Elem   *TypeTag   // Kind == TypeTagVector
	Struct *StructTag // Kind == TypeTagStruct
}

// CommandKind discriminates the seven Command variants a
// ProgrammableTransaction can contain.
type CommandKind uint8

const (
	CommandMoveCall CommandKind = iota
	CommandTransferObjects
	CommandSplitCoins
	CommandMergeCoins
	CommandPublish
	CommandMakeMoveVec
	CommandUpgrade
)

// ProgrammableMoveCall is the MoveCall command's payload.
type ProgrammableMoveCall struct {
	Package       ObjectID
	Module        string
	Function      string
	TypeArguments []TypeTag
	Arguments     []Argument
}

// Command is one step of a ProgrammableTransaction's command list.
type Command struct {
	Kind CommandKind

	MoveCall ProgrammableMoveCall // CommandMoveCall

	TransferObjects   []Argument // CommandTransferObjects: objects
	TransferRecipient  Argument   // CommandTransferObjects: recipient

	SplitCoinsCoin   Argument   // CommandSplitCoins: source coin
	SplitCoinsAmounts []Argument // CommandSplitCoins: amounts

	MergeCoinsDestination Argument   // CommandMergeCoins
	MergeCoinsSources      []Argument // CommandMergeCoins

	PublishModules    [][]byte   // CommandPublish / CommandUpgrade
	PublishDependencies []ObjectID // CommandPublish / CommandUpgrade

	MakeMoveVecType *TypeTag   // CommandMakeMoveVec (nil means None)
	MakeMoveVecElems []Argument // CommandMakeMoveVec

	UpgradePackage ObjectID // CommandUpgrade
	UpgradeTicket  Argument // CommandUpgrade
}

// ProgrammableTransaction is the decoded form of a PTB: its resolved input
// list and ordered command list.
type ProgrammableTransaction struct {
	Inputs   []CallArg
	Commands []Command
}

func kindErr(label string, got int) error {
	return chainerr.NewParseError(chainerr.BadBCS, "%s: unrecognized variant tag %d", label, got)
}
