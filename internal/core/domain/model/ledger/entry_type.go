package ledger

import "lastmile/internal/pkg/errs"

// EntryType classifies a ledger entry.
type EntryType struct {
	name string
}

var (
	// EntryTypeDeposit tops the balance up from outside.
	EntryTypeDeposit = EntryType{name: "deposit"}
	// EntryTypeWithdrawal takes funds out, commission included.
	EntryTypeWithdrawal = EntryType{name: "withdrawal"}
	// EntryTypeFreeze moves funds into escrow for an order.
	EntryTypeFreeze = EntryType{name: "freeze"}
	// EntryTypeUnfreeze releases escrowed funds back.
	EntryTypeUnfreeze = EntryType{name: "unfreeze"}
	// EntryTypeCommission is the platform's cut of a settled order.
	EntryTypeCommission = EntryType{name: "commission"}
	// EntryTypePayment moves the delivery cost between seller and courier.
	EntryTypePayment = EntryType{name: "payment"}
)

// EntryTypeFromString parses an entry type from its wire representation.
func EntryTypeFromString(name string) (EntryType, error) {
	for _, et := range []EntryType{
		EntryTypeDeposit, EntryTypeWithdrawal, EntryTypeFreeze,
		EntryTypeUnfreeze, EntryTypeCommission, EntryTypePayment,
	} {
		if et.name == name {
			return et, nil
		}
	}
	return EntryType{}, errs.NewValueIsInvalidError("entryType")
}

// Validate rejects the zero value.
func (et EntryType) Validate() error {
	if et.name == "" {
		return errs.NewValueIsRequiredError("entryType")
	}
	return nil
}

// String returns the wire representation of the entry type.
func (et EntryType) String() string {
	return et.name
}
