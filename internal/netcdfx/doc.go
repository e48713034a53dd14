// Package netcdfx extracts point time series from NetCDF grid files.
package netcdfx
