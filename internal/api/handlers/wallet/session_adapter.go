package wallet

import (
	"github/chapool/dex-wallet/internal/api"
	"github/chapool/dex-wallet/internal/api/httperrors"
	"github/chapool/dex-wallet/internal/wallet/adapter"
)

func activeAdapter(s *api.Server) (*adapter.EthereumAdapter, error) {
	a := s.Session.Adapter()
	if a == nil {
		return nil, httperrors.ErrConflictNoSession
	}

	return a, nil
}
