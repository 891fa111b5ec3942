package embedding

import (
	"fmt"

	"github.com/dmitrijs2005/mindlens/internal/common"
)

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", common.ErrEmbeddingUnavailable, err)
}
