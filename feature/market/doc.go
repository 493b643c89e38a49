// Package market maintains a table of market prices next to the wiki
// prices of the item catalog.
//
// Prices come from a Google Sheet exported as CSV (three columns: item id,
// buy price, sell price) or from an uploaded CSV file. Rows are joined
// with the item catalog for the item name and wiki price. Only the buy and
// sell columns can be edited afterwards.
//
// The current table is kept under the fixed key marketPricesCache in one
// of three backends:
//
//	storage   object cache/marketPricesCache.json in the bucket
//	database  row of the market_price_caches table
//	none      memory only
//
// A cached table is served before any remote fetch unless a reload is
// forced. A cache that cannot be decoded is ignored and the sheet fetched.
//
// # Routes
//
//	POST /market/load              load the sheet (or the cache)
//	GET  /market                   editable HTML table, or JSON with format=json
//	PUT  /market/cells/:row/:col   edit a buy or sell price
//	POST /market/import            replace the table with a CSV upload
//	GET  /market/export            download item_id,market_buy,market_sell
package market
