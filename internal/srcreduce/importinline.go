package srcreduce

import (
	"context"

	"swiftreduce/internal/logging"
	"swiftreduce/internal/request"
)

// inlineFirstImport replaces the first import declaration with the
// generated interface of its module, per spec.md §4.D step 6. It
// returns inlined=true only when the replacement was both produced and
// accepted by the oracle.
func inlineFirstImport(ctx context.Context, o Invoker, ri *request.RequestInfo) (*request.RequestInfo, bool, error) {
	pf, err := parseSource(ctx, ri.FileContents)
	if err != nil {
		return ri, false, err
	}
	importNode := pf.firstImport()
	if importNode == nil {
		pf.close()
		return ri, false, nil
	}

	moduleName := pf.importedModuleName(importNode)
	start, end := int(importNode.StartByte()), int(importNode.EndByte())
	pf.close()

	interfaceText, err := extractModuleInterface(ctx, o, moduleName, ri.CompilerArgs)
	if err != nil {
		fallback := fallbackTargetSDKArgs(ri.CompilerArgs)
		interfaceText, err = extractModuleInterface(ctx, o, moduleName, fallback)
		if err != nil {
			logging.SrcReduceDebug("interface unavailable for module %s: %v", moduleName, err)
			return ri, false, nil
		}
	}

	edits := []request.SourceEdit{{Start: start, End: end, NewText: interfaceText}}
	next, accepted, err := attempt(ctx, o, ri, edits)
	if err != nil {
		return ri, false, err
	}
	return next, accepted, nil
}
