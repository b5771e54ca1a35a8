package ledger

import "time"

// seedDemo loads the demo session the apps ship with: a commuter with
// history, two linked provider cards, the challenge and reward
// catalogs and a handful of official alerts.
func (s *Store) seedDemo() {
	now := s.now()
	day := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	s.user = User{
		ID:            "user-demo",
		FullName:      "Thabo Mokoena",
		Email:         "thabo@mzansipass.co.za",
		LoyaltyPoints: 1250,
		Role:          RoleCommuter,
	}

	s.virtualCard = VirtualCard{
		CardNumber:     "5018 4021 7766 9031",
		CardHolderName: "Thabo Mokoena",
		ValidThru:      now.AddDate(4, 0, 0).Format("01/06"),
		BalanceCents:   38450,
		Theme:          ThemeMzansi,
	}

	s.physicalCards = []PhysicalCard{
		{
			ID:           "pc-gautrain-gold",
			Provider:     ProviderGautrain,
			CardNumber:   "7734",
			Nickname:     "Gautrain Gold",
			BalanceCents: 12000,
		},
		{
			ID:           "pc-reavaya-commuter",
			Provider:     ProviderReaVaya,
			CardNumber:   "2291",
			Nickname:     "Rea Vaya Commuter",
			BalanceCents: 4550,
		},
	}

	s.trips = []Trip{
		{
			ID:           "trip-demo-1",
			Provider:     ProviderGautrain,
			From:         "Sandton Gautrain Station",
			To:           "Park Station",
			Date:         day(1),
			FareCents:    3400,
			CardID:       "pc-gautrain-gold",
			CardNickname: "Gautrain Gold",
		},
		{
			ID:           "trip-demo-2",
			Provider:     ProviderReaVaya,
			From:         "Thokoza Park",
			To:           "Library Gardens",
			Date:         day(2),
			FareCents:    1250,
			CardID:       VirtualCardID,
			CardNickname: "Virtual Card",
		},
		{
			ID:           "trip-demo-3",
			Provider:     ProviderMyCiTi,
			From:         "Civic Centre",
			To:           "Table View",
			Date:         day(4),
			FareCents:    1800,
			CardID:       VirtualCardID,
			CardNickname: "Virtual Card",
		},
	}

	s.transactions = []Transaction{
		{ID: "txn-demo-1", Date: day(1), AmountCents: 20000, Status: TxCompleted},
		{ID: "txn-demo-2", Date: day(3), AmountCents: -2550, Status: TxCompleted, Provider: ProviderPRASA},
		{ID: "txn-demo-3", Date: day(6), AmountCents: 10000, Status: TxCompleted},
	}

	s.loyaltyEvents = []LoyaltyEvent{
		{ID: "le-demo-1", Type: LoyaltyTopUp, Description: "Top-up R200.00", Date: day(1), Points: 20},
		{ID: "le-demo-2", Type: LoyaltyTrip, Description: "Trip from Sandton Gautrain Station", Date: day(1), Points: 34},
		{ID: "le-demo-3", Type: LoyaltyBonus, Description: "Welcome Bonus", Date: day(30), Points: 100},
	}

	s.challenges = []Challenge{
		{
			ID:          "ch-weekly-wanderer",
			Title:       "Weekly Wanderer",
			Description: "Complete 5 trips on any provider",
			Points:      150,
			Goal:        5,
			Type:        ChallengeTripCount,
		},
		{
			ID:          "ch-route-master",
			Title:       "Route Master",
			Description: "Complete 15 trips on any provider",
			Points:      400,
			Goal:        15,
			Type:        ChallengeTripCount,
		},
		{
			ID:          "ch-big-spender",
			Title:       "Big Spender",
			Description: "Top up a total of R200",
			Points:      250,
			Goal:        20000,
			Type:        ChallengeTopUpAmount,
		},
	}
	s.progress = freshProgress(s.challenges)

	s.rewards = []Reward{
		{
			ID:          "rw-voucher-10",
			Title:       "R10 Top-up Voucher",
			Description: "R10 credited straight to your virtual card",
			Cost:        500,
			Type:        RewardTopUpVoucher,
			ValueCents:  1000,
		},
		{
			ID:          "rw-voucher-25",
			Title:       "R25 Top-up Voucher",
			Description: "R25 credited straight to your virtual card",
			Cost:        1000,
			Type:        RewardTopUpVoucher,
			ValueCents:  2500,
		},
		{
			ID:          "rw-voucher-50",
			Title:       "R50 Top-up Voucher",
			Description: "R50 credited straight to your virtual card",
			Cost:        1800,
			Type:        RewardTopUpVoucher,
			ValueCents:  5000,
		},
	}

	s.alerts = []TransitAlert{
		{
			ID:          "alert-demo-1",
			Type:        AlertOfficial,
			Provider:    ProviderGautrain,
			Category:    CategoryDelay,
			Title:       "Major delays on the Sandton line",
			Description: "Signal fault at Marlboro. Trains running up to 25 minutes late.",
			Timestamp:   now.Add(-40 * time.Minute),
		},
		{
			ID:          "alert-demo-2",
			Type:        AlertOfficial,
			Provider:    ProviderReaVaya,
			Category:    CategoryInfo,
			Title:       "Weekend timetable in effect",
			Description: "Trunk routes run every 30 minutes on public holidays.",
			Timestamp:   now.Add(-3 * time.Hour),
		},
		{
			ID:          "alert-demo-3",
			Type:        AlertUserReport,
			Provider:    ProviderMetrobus,
			Category:    CategoryCrowded,
			Title:       "Bus full at peak",
			Description: "Route 77 standing room only from Main Reef Rd.",
			Timestamp:   now.Add(-70 * time.Minute),
		},
	}
}
