/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package bizcontext

// Industry glossaries, matched against column names in order.
var glossaries = map[string][]glossaryEntry{
	IndustryFinancial: {
		{"account", "Financial account holder record"},
		{"transaction", "Financial transaction or payment"},
		{"balance", "Account balance or available funds"},
		{"credit", "Credit-related information or transactions"},
		{"debit", "Debit transactions or charges"},
		{"risk", "Risk assessment or credit risk scoring"},
		{"kyc", "Know Your Customer compliance data"},
		{"aml", "Anti-Money Laundering related fields"},
		{"routing", "Bank routing number or payment routing"},
		{"swift", "SWIFT code for international transfers"},
	},
	IndustryHealthcare: {
		{"patient", "Patient demographic or medical information"},
		{"diagnosis", "Medical diagnosis codes (ICD-10)"},
		{"procedure", "Medical procedures (CPT codes)"},
		{"provider", "Healthcare provider information"},
		{"claim", "Insurance claim or billing information"},
		{"phi", "Protected Health Information"},
		{"hipaa", "HIPAA compliance related data"},
		{"medication", "Prescription or medication data"},
		{"allergy", "Patient allergy information"},
		{"vital", "Vital signs measurements"},
	},
	IndustryRetail: {
		{"customer", "Customer profile and demographic data"},
		{"order", "Purchase order information"},
		{"product", "Product catalog and inventory data"},
		{"inventory", "Stock levels and warehouse data"},
		{"sales", "Sales performance and revenue data"},
		{"cart", "Shopping cart and session data"},
		{"payment", "Payment processing information"},
		{"shipping", "Shipping and fulfillment data"},
		{"return", "Return and refund processing"},
		{"loyalty", "Customer loyalty program data"},
		{"promotion", "Marketing campaigns and promotions"},
	},
	IndustryTravel: {
		{"booking", "Reservation or booking transaction record"},
		{"reservation", "Hotel/accommodation reservation details"},
		{"accommodation", "Property or hotel listing information"},
		{"property", "Hotel, apartment, or rental property details"},
		{"guest", "Traveler or guest profile and preferences"},
		{"stay", "Actual stay period and check-in/out details"},
		{"cancellation", "Booking cancellation and refund information"},
		{"rate", "Room rates, pricing, and availability data"},
		{"availability", "Property availability and capacity management"},
		{"commission", "Partner commission and revenue sharing"},
		{"inventory", "Room inventory and allocation management"},
		{"channel", "Distribution channel (direct, OTA, GDS)"},
		{"payment", "Payment processing and fraud detection"},
		{"review", "Guest reviews and property ratings"},
		{"loyalty", "Guest loyalty program and points"},
		{"destination", "Travel destination and location data"},
		{"amenity", "Property amenities and facilities"},
		{"policy", "Cancellation, payment, and booking policies"},
		{"search", "Search queries and user behavior"},
		{"conversion", "Booking funnel and conversion tracking"},
		{"revenue", "Revenue management and pricing optimization"},
		{"competitor", "Competitive pricing and market analysis"},
		{"fraud", "Fraud detection and prevention data"},
		{"partner", "Hotel partner and supplier information"},
		{"contract", "Partner contracts and rate agreements"},
	},
	IndustryManufacturing: {
		{"production", "Manufacturing production data"},
		{"quality", "Quality control and assurance metrics"},
		{"equipment", "Manufacturing equipment and machinery"},
		{"batch", "Production batch tracking"},
		{"material", "Raw materials and supply chain"},
		{"operator", "Production line operator data"},
		{"downtime", "Equipment downtime tracking"},
		{"yield", "Production yield and efficiency"},
		{"safety", "Workplace safety incidents"},
		{"maintenance", "Equipment maintenance records"},
	},
}

// complianceFrameworks returns the regulatory frameworks relevant to the
// industry. Unknown industries get the General set.
func complianceFrameworks(industry string) []string {
	switch industry {
	case IndustryFinancial:
		return []string{
			"PCI DSS - Payment Card Industry Data Security Standard",
			"SOX - Sarbanes-Oxley Act compliance",
			"GDPR - General Data Protection Regulation",
			"CCPA - California Consumer Privacy Act",
			"KYC - Know Your Customer requirements",
			"AML - Anti-Money Laundering regulations",
			"BASEL III - Banking regulatory framework",
		}
	case IndustryHealthcare:
		return []string{
			"HIPAA - Health Insurance Portability and Accountability Act",
			"HITECH - Health Information Technology for Economic and Clinical Health",
			"FDA 21 CFR Part 11 - Electronic records compliance",
			"GDPR - General Data Protection Regulation",
			"State privacy laws - Various state healthcare privacy requirements",
		}
	case IndustryRetail:
		return []string{
			"PCI DSS - Payment Card Industry Data Security Standard",
			"GDPR - General Data Protection Regulation",
			"CCPA - California Consumer Privacy Act",
			"COPPA - Children's Online Privacy Protection Act",
			"CAN-SPAM Act - Email marketing compliance",
			"FTC Act - Federal Trade Commission consumer protection",
		}
	case IndustryTravel:
		return []string{
			"GDPR - General Data Protection Regulation (critical for EU travelers)",
			"PCI DSS - Payment Card Industry Data Security Standard",
			"CCPA - California Consumer Privacy Act",
			"Data Localization Laws - Various country-specific requirements",
			"Consumer Protection Laws - Travel-specific regulations",
			"Anti-Money Laundering (AML) - For high-value bookings",
			"Package Travel Directive - EU travel package regulations",
			"Price Transparency Laws - Display of total costs and fees",
		}
	default:
		return []string{
			"GDPR - General Data Protection Regulation",
			"SOC 2 - Service Organization Control 2",
			"ISO 27001 - Information security management",
		}
	}
}
