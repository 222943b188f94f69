package models

import "time"

// DocumentKind is the closed set of compliance document types tracked
// per bus (all but the license) and per driver (the license).
type DocumentKind string

const (
	DocFitnessCertificate  DocumentKind = "FitnessCertificate"
	DocInsurance           DocumentKind = "Insurance"
	DocPollutionCertificate DocumentKind = "PUC"
	DocPermit              DocumentKind = "Permit"
	DocTaxReceipt          DocumentKind = "Tax"
	DocLicense             DocumentKind = "License"
)

// DocumentKindName maps a kind to its display name as shown on the
// bus-details compliance table.
var DocumentKindName = map[DocumentKind]string{
	DocFitnessCertificate:   "Fitness Certificate (FC)",
	DocInsurance:            "Insurance Policy",
	DocPollutionCertificate: "Pollution Certificate (PUC)",
	DocPermit:               "Route Permit",
	DocTaxReceipt:           "Tax Receipt",
	DocLicense:              "Driving License",
}

// BusDocumentKinds lists the document kinds every bus carries.
var BusDocumentKinds = []DocumentKind{
	DocFitnessCertificate,
	DocInsurance,
	DocPollutionCertificate,
	DocPermit,
	DocTaxReceipt,
}

// ComplianceDocument belongs to exactly one bus or driver. Renewal
// replaces the dates and file reference in place; there is no version
// history.
type ComplianceDocument struct {
	Kind      DocumentKind `json:"kind"`
	Number    string       `json:"number"`
	IssueDate time.Time    `json:"issueDate"`
	Expiry    time.Time    `json:"expiryDate"`
	Authority string       `json:"authority,omitempty"`
	FileRef   string       `json:"fileRef,omitempty"`
}

// ExpiryBucket is the discretized compliance-expiry state of a document.
type ExpiryBucket string

const (
	BucketExpired  ExpiryBucket = "Expired"
	BucketCritical ExpiryBucket = "Critical"
	BucketWarning  ExpiryBucket = "Warning"
	BucketValid    ExpiryBucket = "Valid"
)

// ExpiryStatus is the classifier output: the bucket, the exact day
// count the UI renders, the label text, and the alert severity.
type ExpiryStatus struct {
	Bucket   ExpiryBucket  `json:"bucket"`
	DaysLeft int           `json:"daysLeft"`
	Label    string        `json:"label"`
	Severity AlertSeverity `json:"severity"`
}
