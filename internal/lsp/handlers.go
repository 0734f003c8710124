package lsp

import (
	"context"
	"encoding/json"

	"github.com/aster-cloud/cnl/internal/editor"
	"github.com/aster-cloud/cnl/internal/index"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// toProtocolPosition/toProtocolRange convert internal/editor's zero-based
// plain types to go.lsp.dev/protocol's wire types, at the transport
// boundary only (internal/editor stays free of any LSP dependency).

func toProtocolPosition(p editor.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line), Character: uint32(p.Character)}
}

func toProtocolRange(r editor.Range) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.End)}
}

func toEditorPosition(p protocol.Position) editor.Position {
	return editor.Position{Line: int(p.Line), Character: int(p.Character)}
}

// nameAt resolves the declaration name under pos in path, via
// PrepareRename, for requests (references, rename, definition fallback)
// that need a name rather than just a range.
func nameAt(idx *index.Index, path string, pos editor.Position) (string, bool) {
	_, name, ok := editor.PrepareRename(idx, path, pos)
	return name, ok
}

// handleTextDocumentHover handles hover requests
func (s *Server) handleTextDocumentHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse hover params")
	}

	docURI := string(params.TextDocument.URI)
	pos := toEditorPosition(params.Position)

	sym, ok := editor.SymbolAt(s.ws.Index(), docURI, pos)
	if !ok {
		return reply(ctx, nil, nil)
	}
	hover := editor.HoverForSymbol(sym)

	result := protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hover.Contents,
		},
		Range: protocolRangePtr(hover.Range),
	}

	return reply(ctx, result, nil)
}

// handleTextDocumentDefinition handles go-to-definition requests
func (s *Server) handleTextDocumentDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse definition params")
	}

	docURI := string(params.TextDocument.URI)
	pos := toEditorPosition(params.Position)
	name, _ := nameAt(s.ws.Index(), docURI, pos)

	loc, ok := editor.Definition(s.ws.Index(), docURI, pos, name)
	if !ok {
		return reply(ctx, nil, nil)
	}

	return reply(ctx, toProtocolLocation(loc), nil)
}

// handleTextDocumentReferences handles find references requests
func (s *Server) handleTextDocumentReferences(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ReferenceParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse references params")
	}

	docURI := string(params.TextDocument.URI)
	pos := toEditorPosition(params.Position)

	name, ok := nameAt(s.ws.Index(), docURI, pos)
	if !ok {
		return reply(ctx, []protocol.Location{}, nil)
	}

	var locations []protocol.Location
	err := editor.ReferencesChunked(ctx, s.ws.Index(), name, 0, func(batch []editor.Location) error {
		for _, l := range batch {
			locations = append(locations, toProtocolLocation(l))
		}
		return nil
	})
	if err != nil {
		s.logger.Printf("Error collecting references: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to get references")
	}

	return reply(ctx, locations, nil)
}

// handleTextDocumentDocumentSymbol handles document symbol requests
func (s *Server) handleTextDocumentDocumentSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse document symbol params")
	}

	docURI := string(params.TextDocument.URI)
	symbols := editor.DocumentSymbols(s.ws.Index(), docURI)

	lspSymbols := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		lspSymbols = append(lspSymbols, toProtocolDocumentSymbol(sym))
	}

	return reply(ctx, lspSymbols, nil)
}

func toProtocolDocumentSymbol(sym editor.DocumentSymbol) protocol.DocumentSymbol {
	children := make([]protocol.DocumentSymbol, 0, len(sym.Children))
	for _, c := range sym.Children {
		children = append(children, toProtocolDocumentSymbol(c))
	}
	r := toProtocolRange(sym.Range)
	return protocol.DocumentSymbol{
		Name:           sym.Name,
		Kind:           convertSymbolKind(sym.Kind),
		Range:          r,
		SelectionRange: r,
		Children:       children,
	}
}

// handleWorkspaceSymbol handles workspace symbol search requests
func (s *Server) handleWorkspaceSymbol(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.WorkspaceSymbolParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse workspace symbol params")
	}

	matches := editor.WorkspaceSymbols(s.ws.Index(), params.Query)

	symbols := make([]protocol.SymbolInformation, 0, len(matches))
	for _, m := range matches {
		symbols = append(symbols, protocol.SymbolInformation{
			Name:          m.Name,
			Kind:          convertSymbolKind(m.Kind),
			Location:      toProtocolLocation(m.Location),
			ContainerName: m.ContainerName,
		})
	}

	return reply(ctx, symbols, nil)
}

// handleTextDocumentDocumentHighlight handles document highlight requests
func (s *Server) handleTextDocumentDocumentHighlight(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DocumentHighlightParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse document highlight params")
	}

	docURI := string(params.TextDocument.URI)
	pos := toEditorPosition(params.Position)

	ranges := editor.DocumentHighlight(s.ws.Index(), docURI, pos)
	highlights := make([]documentHighlight, 0, len(ranges))
	for _, r := range ranges {
		highlights = append(highlights, documentHighlight{Range: toProtocolRange(r)})
	}

	return reply(ctx, highlights, nil)
}

// documentHighlight is the wire shape of one textDocument/documentHighlight
// result entry (kind omitted: every highlight the index can produce is a
// declaration site, LSP's DocumentHighlightKindText).
type documentHighlight struct {
	Range protocol.Range `json:"range"`
}

// handleTextDocumentPrepareRename handles prepareRename requests
func (s *Server) handleTextDocumentPrepareRename(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.PrepareRenameParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse prepareRename params")
	}

	docURI := string(params.TextDocument.URI)
	pos := toEditorPosition(params.Position)

	r, name, ok := editor.PrepareRename(s.ws.Index(), docURI, pos)
	if !ok {
		return reply(ctx, nil, nil)
	}

	return reply(ctx, prepareRenameResult{Range: toProtocolRange(r), Placeholder: name}, nil)
}

// prepareRenameResult is the {range, placeholder} wire shape LSP allows
// for textDocument/prepareRename.
type prepareRenameResult struct {
	Range       protocol.Range `json:"range"`
	Placeholder string         `json:"placeholder"`
}

// handleTextDocumentRename handles rename requests
func (s *Server) handleTextDocumentRename(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.RenameParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse rename params")
	}

	docURI := string(params.TextDocument.URI)
	pos := toEditorPosition(params.Position)

	name, ok := nameAt(s.ws.Index(), docURI, pos)
	if !ok {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Position does not name a renameable declaration")
	}

	changes := make(map[string][]protocol.TextEdit)
	err := editor.RenameChunked(ctx, s.ws.Index(), name, params.NewName, 0, func(batch []editor.FileEdit) error {
		for _, fe := range batch {
			changes[fe.Path] = append(changes[fe.Path], protocol.TextEdit{
				Range:   toProtocolRange(fe.Edit.Range),
				NewText: fe.Edit.NewText,
			})
		}
		return nil
	})
	if err != nil {
		s.logger.Printf("Error collecting rename edits: %v", err)
		return s.replyWithError(ctx, reply, jsonrpc2.InternalError, "Failed to rename")
	}

	return reply(ctx, workspaceEdit{Changes: changes}, nil)
}

// workspaceEdit is the {changes: {uri: TextEdit[]}} wire shape LSP uses
// for a WorkspaceEdit limited to per-file text replacements.
type workspaceEdit struct {
	Changes map[string][]protocol.TextEdit `json:"changes"`
}

// handleTextDocumentSemanticTokensFull handles semanticTokens/full requests
func (s *Server) handleTextDocumentSemanticTokensFull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.SemanticTokensParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse semanticTokens params")
	}

	docURI := string(params.TextDocument.URI)
	data := editor.SemanticTokens(s.ws.Index(), docURI)
	if data == nil {
		data = []uint32{}
	}

	return reply(ctx, semanticTokensResult{Data: data}, nil)
}

// semanticTokensResult is the {data: uint32[]} wire shape of a
// textDocument/semanticTokens/full response.
type semanticTokensResult struct {
	Data []uint32 `json:"data"`
}

// handleTextDocumentInlayHint handles inlayHint requests
func (s *Server) handleTextDocumentInlayHint(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InlayHintParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse inlayHint params")
	}

	docURI := string(params.TextDocument.URI)
	mod, ok := s.ws.Module(docURI)
	if !ok {
		return reply(ctx, []inlayHint{}, nil)
	}

	hints := editor.InlayHints(mod)
	out := make([]inlayHint, 0, len(hints))
	for _, h := range hints {
		out = append(out, inlayHint{Position: toProtocolPosition(h.Position), Label: h.Label})
	}

	return reply(ctx, out, nil)
}

// inlayHint is the {position, label} wire shape of one InlayHint.
type inlayHint struct {
	Position protocol.Position `json:"position"`
	Label    string            `json:"label"`
}

// handleTextDocumentCodeAction handles codeAction requests. The wire
// Diagnostic a client echoes back in CodeActionContext doesn't carry the
// structured Data fix-it payload CodeActionsFor needs (EFF_CAP_MISSING's
// {func, cap}), so this matches the request range against the
// workspace's own last-pushed diagnostics for the document instead of
// the echoed ones, and drives CodeActionsFor from those.
func (s *Server) handleTextDocumentCodeAction(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.CodeActionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "Failed to parse codeAction params")
	}

	docURI := string(params.TextDocument.URI)
	requestRange := toEditorRange(params.Range)

	var actions []codeActionResult
	for _, d := range s.ws.Diagnostics(docURI) {
		if !rangesOverlap(editor.FromOrigin(d.Origin), requestRange) {
			continue
		}
		for _, a := range editor.CodeActionsFor(docURI, d) {
			edit := workspaceEdit{Changes: map[string][]protocol.TextEdit{
				a.URI: {{Range: toProtocolRange(a.Edit.Range), NewText: a.Edit.NewText}},
			}}
			actions = append(actions, codeActionResult{Title: a.Title, Edit: &edit})
		}
	}

	return reply(ctx, actions, nil)
}

// codeActionResult is the {title, edit} wire shape of one CodeAction.
type codeActionResult struct {
	Title string         `json:"title"`
	Edit  *workspaceEdit `json:"edit,omitempty"`
}

func rangesOverlap(a, b editor.Range) bool {
	if a.End.Line < b.Start.Line || b.End.Line < a.Start.Line {
		return false
	}
	if a.End.Line == b.Start.Line && a.End.Character < b.Start.Character {
		return false
	}
	if b.End.Line == a.Start.Line && b.End.Character < a.Start.Character {
		return false
	}
	return true
}

// toProtocolLocation/toEditorRange convert between internal/editor's
// plain types and protocol's wire types, at the transport boundary.

func toProtocolLocation(l editor.Location) protocol.Location {
	return protocol.Location{URI: protocol.DocumentURI(l.URI), Range: toProtocolRange(l.Range)}
}

func toEditorRange(r protocol.Range) editor.Range {
	return editor.Range{Start: toEditorPosition(r.Start), End: toEditorPosition(r.End)}
}

func protocolRangePtr(r editor.Range) *protocol.Range {
	pr := toProtocolRange(r)
	return &pr
}

// convertSymbolKind maps an indexed symbol's kind to the LSP symbol kind
// an editor renders it with.
func convertSymbolKind(kind index.SymbolKind) protocol.SymbolKind {
	switch kind {
	case index.SymbolKindFunc:
		return protocol.SymbolKindFunction
	case index.SymbolKindData:
		return protocol.SymbolKindStruct
	case index.SymbolKindField:
		return protocol.SymbolKindField
	case index.SymbolKindEnum:
		return protocol.SymbolKindEnum
	case index.SymbolKindEnumVariant:
		return protocol.SymbolKindEnumMember
	case index.SymbolKindImport:
		return protocol.SymbolKindNamespace
	default:
		return protocol.SymbolKindObject
	}
}
