package sui

import "github.com/anchorageoss/visualsign-parser/internal/fields"

func argumentLabel(a Argument) string {
	switch a.Kind {
	case ArgumentGasCoin:
		return "gas coin"
	case ArgumentInput:
		return "input[" + itoa(int(a.InputIndex)) + "]"
	case ArgumentResult:
		return "result[" + itoa(int(a.ResultIndex)) + "]"
	case ArgumentNestedResult:
		return "result[" + itoa(int(a.ResultIndex)) + "][" + itoa(int(a.NestedIndex)) + "]"
	default:
		return "unknown argument"
	}
}

func argumentListField(label string, args []Argument) fields.Field {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += argumentLabel(a)
	}
	if s == "" {
		s = "(none)"
	}
	return fields.NewTextV2(label, s)
}

func visualizeTransferObjects(cmd Command) fields.Field {
	title := "Transfer Objects"
	objects := argumentListField("Objects", cmd.TransferObjects)
	recipient := fields.NewTextV2("Recipient", argumentLabel(cmd.TransferRecipient))
	condensed := fields.NewListLayout(fields.Plain(recipient))
	expanded := fields.NewListLayout(fields.Plain(objects), fields.Plain(recipient))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}

func visualizeSplitCoins(cmd Command) fields.Field {
	title := "Split Coins"
	coin := fields.NewTextV2("Coin", argumentLabel(cmd.SplitCoinsCoin))
	amounts := argumentListField("Amounts", cmd.SplitCoinsAmounts)
	condensed := fields.NewListLayout(fields.Plain(amounts))
	expanded := fields.NewListLayout(fields.Plain(coin), fields.Plain(amounts))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}

func visualizeMergeCoins(cmd Command) fields.Field {
	title := "Merge Coins"
	dest := fields.NewTextV2("Destination", argumentLabel(cmd.MergeCoinsDestination))
	sources := argumentListField("Sources", cmd.MergeCoinsSources)
	condensed := fields.NewListLayout(fields.Plain(dest))
	expanded := fields.NewListLayout(fields.Plain(dest), fields.Plain(sources))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}

func visualizePublish(cmd Command) fields.Field {
	title := "Publish Package"
	count := fields.NewNumber("Modules", itoa(len(cmd.PublishModules)), itoa(len(cmd.PublishModules))+" modules")
	deps := fields.NewNumber("Dependencies", itoa(len(cmd.PublishDependencies)), itoa(len(cmd.PublishDependencies))+" dependencies")
	condensed := fields.NewListLayout(fields.Plain(count))
	expanded := fields.NewListLayout(fields.Plain(count), fields.Plain(deps))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}

func visualizeMakeMoveVec(cmd Command) fields.Field {
	title := "Build Move Vector"
	elems := argumentListField("Elements", cmd.MakeMoveVecElems)
	condensed := fields.NewListLayout(fields.Plain(elems))
	return fields.NewPreviewLayout(title, title, "", condensed, fields.NewListLayout(fields.Plain(elems)))
}

func visualizeUpgrade(cmd Command) fields.Field {
	title := "Upgrade Package"
	pkg := fields.NewAddressV2("Package", cmd.UpgradePackage.String(), "", fields.AddressFieldOpts{})
	count := fields.NewNumber("Modules", itoa(len(cmd.PublishModules)), itoa(len(cmd.PublishModules))+" modules")
	condensed := fields.NewListLayout(fields.Plain(pkg))
	expanded := fields.NewListLayout(fields.Plain(pkg), fields.Plain(count))
	return fields.NewPreviewLayout(title, title, "", condensed, expanded)
}
