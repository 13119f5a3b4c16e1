package models

// CategoryUncategorized is assigned when no rule pattern matches.
const CategoryUncategorized = "Uncategorized"

// PaymentPhrases mark card payments and transfers. A spend-signed row whose
// description contains one of them is not counted as spending.
var PaymentPhrases = []string{
	"CREDIT CARD PAYMENT",
	"CC PAYMENT",
	"NETBANKING TRANSFER",
}

// PermissionOutputFile is the mode of written report files.
const PermissionOutputFile = 0644
