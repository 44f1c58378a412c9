package sui

import "github.com/anchorageoss/visualsign-parser/internal/chainerr"

// DecodeProgrammableTransaction BCS-decodes a raw ProgrammableTransaction:
// Vec<CallArg> inputs followed by Vec<Command> commands, with no envelope
// (sender/gas/expiration) wrapping expected — callers that have a full
// TransactionData envelope should slice to the PTB's bytes first.
func DecodeProgrammableTransaction(data []byte) (*ProgrammableTransaction, error) {
	d := newDecoder(data)

	inputs, err := readCallArgVector(d)
	if err != nil {
		return nil, err
	}

	commands, err := readCommandVector(d, 0)
	if err != nil {
		return nil, err
	}

	if d.remaining() != 0 {
		return nil, chainerr.NewParseErrorAt(chainerr.TrailingData, d.pos, "%d trailing bytes after programmable transaction", d.remaining())
	}

	return &ProgrammableTransaction{Inputs: inputs, Commands: commands}, nil
}

func readCallArgVector(d *decoder) ([]CallArg, error) {
	n, err := d.readVectorLength()
	if err != nil {
		return nil, err
	}
	out := make([]CallArg, 0, n)
	for i := 0; i < n; i++ {
		arg, err := readCallArg(d)
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

func readCallArg(d *decoder) (CallArg, error) {
	tag, err := d.readULEB128()
	if err != nil {
		return CallArg{}, err
	}
	switch CallArgKind(tag) {
	case CallArgPure:
		b, err := d.readByteVector()
		if err != nil {
			return CallArg{}, err
		}
		return CallArg{Kind: CallArgPure, Pure: b}, nil
	case CallArgObject:
		obj, err := readObjectArg(d)
		if err != nil {
			return CallArg{}, err
		}
		return CallArg{Kind: CallArgObject, Object: obj}, nil
	default:
		return CallArg{}, kindErr("CallArg", tag)
	}
}

func readObjectArg(d *decoder) (ObjectArg, error) {
	tag, err := d.readULEB128()
	if err != nil {
		return ObjectArg{}, err
	}
	switch ObjectArgKind(tag) {
	case ObjectArgImmOrOwned, ObjectArgReceiving:
		ref, err := readObjectRef(d)
		if err != nil {
			return ObjectArg{}, err
		}
		return ObjectArg{Kind: ObjectArgKind(tag), Owned: ref}, nil
	case ObjectArgShared:
		id, err := d.readAddress()
		if err != nil {
			return ObjectArg{}, err
		}
		version, err := d.readU64()
		if err != nil {
			return ObjectArg{}, err
		}
		mutable, err := d.readBool()
		if err != nil {
			return ObjectArg{}, err
		}
		return ObjectArg{Kind: ObjectArgShared, Shared: SharedObjectRef{ID: ObjectID(id), InitialSharedVersion: version, Mutable: mutable}}, nil
	default:
		return ObjectArg{}, kindErr("ObjectArg", tag)
	}
}

func readObjectRef(d *decoder) (ObjectRef, error) {
	id, err := d.readAddress()
	if err != nil {
		return ObjectRef{}, err
	}
	version, err := d.readU64()
	if err != nil {
		return ObjectRef{}, err
	}
	digest, err := d.readAddress()
	if err != nil {
		return ObjectRef{}, err
	}
	return ObjectRef{ID: ObjectID(id), Version: version, Digest: digest}, nil
}

func readArgumentVector(d *decoder) ([]Argument, error) {
	n, err := d.readVectorLength()
	if err != nil {
		return nil, err
	}
	out := make([]Argument, 0, n)
	for i := 0; i < n; i++ {
		arg, err := readArgument(d)
		if err != nil {
			return nil, err
		}
		out = append(out, arg)
	}
	return out, nil
}

func readArgument(d *decoder) (Argument, error) {
	tag, err := d.readULEB128()
	if err != nil {
		return Argument{}, err
	}
	switch ArgumentKind(tag) {
	case ArgumentGasCoin:
		return Argument{Kind: ArgumentGasCoin}, nil
	case ArgumentInput:
		idx, err := d.readU16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgumentInput, InputIndex: idx}, nil
	case ArgumentResult:
		idx, err := d.readU16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgumentResult, ResultIndex: idx}, nil
	case ArgumentNestedResult:
		idx, err := d.readU16()
		if err != nil {
			return Argument{}, err
		}
		nested, err := d.readU16()
		if err != nil {
			return Argument{}, err
		}
		return Argument{Kind: ArgumentNestedResult, ResultIndex: idx, NestedIndex: nested}, nil
	default:
		return Argument{}, kindErr("Argument", tag)
	}
}

func readTypeTag(d *decoder, depth int) (TypeTag, error) {
	if depth > MaxTypeTagDepth {
		return TypeTag{}, chainerr.NewMalformedCalldata(chainerr.RecursionDepthExceeded, "type tag nesting exceeds %d", MaxTypeTagDepth)
	}
	tag, err := d.readULEB128()
	if err != nil {
		return TypeTag{}, err
	}
	switch TypeTagKind(tag) {
	case TypeTagBool, TypeTagU8, TypeTagU64, TypeTagU128, TypeTagAddress, TypeTagSigner, TypeTagU16, TypeTagU32, TypeTagU256:
		return TypeTag{Kind: TypeTagKind(tag)}, nil
	case TypeTagVector:
		elem, err := readTypeTag(d, depth+1)
		if err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Kind: TypeTagVector, Elem: &elem}, nil
	case TypeTagStruct:
		st, err := readStructTag(d, depth+1)
		if err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Kind: TypeTagStruct, Struct: &st}, nil
	default:
		return TypeTag{}, kindErr("TypeTag", tag)
	}
}

func readStructTag(d *decoder, depth int) (StructTag, error) {
	addr, err := d.readAddress()
	if err != nil {
		return StructTag{}, err
	}
	module, err := d.readString()
	if err != nil {
		return StructTag{}, err
	}
	name, err := d.readString()
	if err != nil {
		return StructTag{}, err
	}
	n, err := d.readVectorLength()
	if err != nil {
		return StructTag{}, err
	}
	params := make([]TypeTag, 0, n)
	for i := 0; i < n; i++ {
		t, err := readTypeTag(d, depth)
		if err != nil {
			return StructTag{}, err
		}
		params = append(params, t)
	}
	return StructTag{Address: ObjectID(addr), Module: module, Name: name, TypeParams: params}, nil
}

func readCommandVector(d *decoder, depth int) ([]Command, error) {
	n, err := d.readVectorLength()
	if err != nil {
		return nil, err
	}
	out := make([]Command, 0, n)
	for i := 0; i < n; i++ {
		cmd, err := readCommand(d, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

func readCommand(d *decoder, depth int) (Command, error) {
	tag, err := d.readULEB128()
	if err != nil {
		return Command{}, err
	}
	switch CommandKind(tag) {
	case CommandMoveCall:
		mc, err := readMoveCall(d, depth)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMoveCall, MoveCall: mc}, nil

	case CommandTransferObjects:
		objects, err := readArgumentVector(d)
		if err != nil {
			return Command{}, err
		}
		recipient, err := readArgument(d)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandTransferObjects, TransferObjects: objects, TransferRecipient: recipient}, nil

	case CommandSplitCoins:
		coin, err := readArgument(d)
		if err != nil {
			return Command{}, err
		}
		amounts, err := readArgumentVector(d)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandSplitCoins, SplitCoinsCoin: coin, SplitCoinsAmounts: amounts}, nil

	case CommandMergeCoins:
		dest, err := readArgument(d)
		if err != nil {
			return Command{}, err
		}
		sources, err := readArgumentVector(d)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMergeCoins, MergeCoinsDestination: dest, MergeCoinsSources: sources}, nil

	case CommandPublish:
		modules, deps, err := readPublishPayload(d)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandPublish, PublishModules: modules, PublishDependencies: deps}, nil

	case CommandMakeMoveVec:
		hasType, err := d.readByte()
		if err != nil {
			return Command{}, err
		}
		var typ *TypeTag
		if hasType == 1 {
			t, err := readTypeTag(d, depth+1)
			if err != nil {
				return Command{}, err
			}
			typ = &t
		} else if hasType != 0 {
			return Command{}, chainerr.NewParseErrorAt(chainerr.BadBCS, d.pos-1, "option tag must be 0 or 1, got %d", hasType)
		}
		elems, err := readArgumentVector(d)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandMakeMoveVec, MakeMoveVecType: typ, MakeMoveVecElems: elems}, nil

	case CommandUpgrade:
		modules, deps, err := readPublishPayload(d)
		if err != nil {
			return Command{}, err
		}
		pkg, err := d.readAddress()
		if err != nil {
			return Command{}, err
		}
		ticket, err := readArgument(d)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandUpgrade, PublishModules: modules, PublishDependencies: deps, UpgradePackage: ObjectID(pkg), UpgradeTicket: ticket}, nil

	default:
		return Command{}, kindErr("Command", tag)
	}
}

func readMoveCall(d *decoder, depth int) (ProgrammableMoveCall, error) {
	pkg, err := d.readAddress()
	if err != nil {
		return ProgrammableMoveCall{}, err
	}
	module, err := d.readString()
	if err != nil {
		return ProgrammableMoveCall{}, err
	}
	function, err := d.readString()
	if err != nil {
		return ProgrammableMoveCall{}, err
	}
	n, err := d.readVectorLength()
	if err != nil {
		return ProgrammableMoveCall{}, err
	}
	typeArgs := make([]TypeTag, 0, n)
	for i := 0; i < n; i++ {
		t, err := readTypeTag(d, depth+1)
		if err != nil {
			return ProgrammableMoveCall{}, err
		}
		typeArgs = append(typeArgs, t)
	}
	args, err := readArgumentVector(d)
	if err != nil {
		return ProgrammableMoveCall{}, err
	}
	return ProgrammableMoveCall{Package: ObjectID(pkg), Module: module, Function: function, TypeArguments: typeArgs, Arguments: args}, nil
}

func readPublishPayload(d *decoder) ([][]byte, []ObjectID, error) {
	n, err := d.readVectorLength()
	if err != nil {
		return nil, nil, err
	}
	modules := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		m, err := d.readByteVector()
		if err != nil {
			return nil, nil, err
		}
		modules = append(modules, m)
	}
	m, err := d.readVectorLength()
	if err != nil {
		return nil, nil, err
	}
	deps := make([]ObjectID, 0, m)
	for i := 0; i < m; i++ {
		addr, err := d.readAddress()
		if err != nil {
			return nil, nil, err
		}
		deps = append(deps, ObjectID(addr))
	}
	return modules, deps, nil
}
