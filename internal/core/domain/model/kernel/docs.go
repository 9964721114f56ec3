// Package kernel provides the shared value objects of the domain model:
// UUID identifiers, WGS84 geo points with haversine distance, and exact
// integer-cent Money. All of them are immutable, constructor-validated,
// and safe to pass by value across aggregate boundaries.
package kernel
