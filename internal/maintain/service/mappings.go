package service

import (
	"context"
	"fmt"

	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/platform/strings"
)

// syncMappings makes the category's provision and instrument rows equal the
// given lists, in list order. With replace set the existing rows of both
// kinds are removed first. Provisions are resolved before instruments and the
// first unknown name aborts with NotFound.
func syncMappings(ctx context.Context, st Store, categoryID int64, provisions, instruments []string, replace bool) error {
	if replace {
		if err := st.DeleteMappings(ctx, []int64{categoryID}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear category mappings")
		}
	}

	provisions = strings.DedupeFold(provisions)
	provisionIDs := make([]int64, 0, len(provisions))
	for _, title := range provisions {
		p, err := st.FindProvision(ctx, title)
		if err != nil {
			return translate(err, fmt.Sprintf("Statutory provision '%s' does not exist.", title), "",
				"failed to look up statutory provision")
		}
		provisionIDs = append(provisionIDs, p.ID)
	}
	if err := st.AddProvisionMappings(ctx, categoryID, provisionIDs); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to map statutory provisions")
	}

	instruments = strings.DedupeFold(instruments)
	instrumentIDs := make([]int64, 0, len(instruments))
	for _, name := range instruments {
		i, err := st.FindInstrument(ctx, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Instrument '%s' does not exist.", name), "",
				"failed to look up instrument")
		}
		instrumentIDs = append(instrumentIDs, i.ID)
	}
	if err := st.AddInstrumentMappings(ctx, categoryID, instrumentIDs); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to map instruments")
	}
	return nil
}
