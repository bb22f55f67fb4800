// Package domain models NOAA daily weather-summary observations and the
// cleaned wind samples derived from them.
//
// # Data Source
//
// Observations come from the NOAA National Centers for Environmental
// Information daily-summaries search (https://www.ncdc.noaa.gov/cdo-web/search),
// exported as station-level CSV. One row per station-day. Columns of
// interest:
//
//	DATE - observation date, YYYY-MM-DD
//	WDF5 - direction of fastest 5-second wind, compass degrees (0-360)
//	WSF5 - fastest 5-second wind speed, mph
//
// Exports carry many more columns (TMAX, TMIN, PRCP, SNWD, AWND, WDF2,
// WSF2, weather-type flags WT01..WT10, ...); all are ignored. The 2-minute
// pair WDF2/WSF2 has the same shape as WDF5/WSF5 and can be selected via
// column-name configuration.
//
// # Missing Values
//
// Either wind field may be absent for a day (anemometer outage, QC
// rejection). Missing cells surface as NaN after CSV loading, or as nil
// pointers on JSON observations from the live feed. A row qualifies as a
// clean [Sample] only when both direction and speed are present; cleaning
// preserves source row order and an all-missing input yields an empty,
// non-error result.
//
// # Calendar Months
//
// Monthly partitioning matches the zero-padded "-MM-" substring of the
// DATE field rather than parsing a full timestamp, so any date format that
// embeds a -01- through -12- month component works. Rows whose date
// matches no month contribute to the aggregate rose only.
package domain
