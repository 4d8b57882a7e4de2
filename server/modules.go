package server

import (
	"context"

	"github.com/verilsp/verilsp/ls"
	"github.com/verilsp/verilsp/lsp"
)

func (s *server) ModulePorts(ctx context.Context, params *lsp.ModulePortsParams) ([]lsp.ModuleDescriptor, error) {
	return ls.GetModulePorts(s.trackers.Get(params.TextDocument.URI)), nil
}

func (s *server) ModuleInfo(ctx context.Context, params *lsp.ModuleInfoParams) ([]lsp.ModuleDescriptor, error) {
	return ls.GetModuleInfo(s.trackers.Get(params.TextDocument.URI)), nil
}

func (s *server) AllModuleInfo(ctx context.Context, params *lsp.AllModuleInfoParams) (map[lsp.DocumentURI][]lsp.ModuleDescriptor, error) {
	return ls.GetAllModuleInfo(s.trackers), nil
}
