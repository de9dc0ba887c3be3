package domain

// CurrencyJPY is the marketplace's default currency. Amounts are stored in
// minor units, which for JPY equals whole yen.
const CurrencyJPY = "JPY"
