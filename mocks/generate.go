package mocks

//go:generate mockgen -destination=./mock_trade_source.go -package=mocks github.com/CodeWithUtkarsha/TradeJournal-sub000/internal/report TradeSource
