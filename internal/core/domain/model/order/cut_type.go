package order

import (
	"fmt"
	"slices"
	"strings"

	"orders/internal/pkg/errs"
)

// CutType is a product drawn from the shop's fixed catalog.
type CutType string

const (
	CutWhole       CutType = "WHOLE"
	CutBiryani     CutType = "BIRYANI_CUT"
	CutCurry       CutType = "CURRY_CUT"
	CutDrumsticks  CutType = "DRUMSTICKS"
	CutBoneless    CutType = "BONELESS"
	CutStandardCut CutType = "STANDARD_CUT"
)

// Catalog returns every accepted cut type, in display order.
func Catalog() []CutType {
	return []CutType{CutWhole, CutBiryani, CutCurry, CutDrumsticks, CutBoneless, CutStandardCut}
}

// ParseCutType accepts only catalog members. Matching is exact: "curry_cut" is rejected.
func ParseCutType(value string) (CutType, error) {
	if strings.TrimSpace(value) == "" {
		return "", errs.NewValueIsRequiredError("cutType")
	}
	c := CutType(value)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c CutType) Validate() error {
	if !slices.Contains(Catalog(), c) {
		return errs.NewValueIsInvalidErrorWithCause("cutType", fmt.Errorf("%q is not in the catalog", string(c)))
	}
	return nil
}

func (c CutType) String() string {
	return string(c)
}
