package universe

// nifty500 is the built-in NSE symbol list used for full scans and as a
// fallback when no CSV universe file is available.
var nifty500 = []string{
	// Nifty 50
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK", "HINDUNILVR", "ITC",
	"SBIN", "BHARTIARTL", "KOTAKBANK", "LT", "AXISBANK", "ASIANPAINT",
	"MARUTI", "TITAN", "SUNPHARMA", "ULTRACEMCO", "BAJFINANCE", "WIPRO",
	"HCLTECH", "NESTLEIND", "POWERGRID", "NTPC", "TATAMOTORS", "M&M",
	"ADANIENT", "ADANIPORTS", "BAJAJFINSV", "TATASTEEL", "ONGC", "JSWSTEEL",
	"COALINDIA", "HINDALCO", "GRASIM", "INDUSINDBK", "TECHM", "DRREDDY",
	"CIPLA", "DIVISLAB", "EICHERMOT", "BPCL", "HEROMOTOCO", "BRITANNIA",
	"APOLLOHOSP", "SHREECEM", "TATACONSUM", "SBILIFE", "HDFCLIFE", "UPL",
	"BAJAJ-AUTO",

	// Nifty Next 50
	"ADANIGREEN", "AMBUJACEM", "BANKBARODA", "BERGEPAINT", "BOSCHLTD",
	"CHOLAFIN", "COLPAL", "DABUR", "DLF", "GAIL", "GODREJCP", "HAVELLS",
	"ICICIGI", "ICICIPRULI", "INDUSTOWER", "IOC", "JINDALSTEL", "JUBLFOOD",
	"LUPIN", "MARICO", "MUTHOOTFIN", "NAUKRI", "PAGEIND", "PETRONET",
	"PIDILITIND", "PNB", "PGHH", "SAIL", "SBICARD", "SIEMENS", "SRF",
	"TATAPOWER", "TORNTPHARM", "TRENT", "VEDL", "ZYDUSLIFE",

	// Nifty Midcap 150
	"AARTIIND", "ABB", "ABCAPITAL", "ABFRL", "ACC", "AIAENG", "AJANTPHARM",
	"ALKEM", "AMARAJABAT", "APLAPOLLO", "ASHOKLEY", "ASTRAL", "ATUL",
	"AUROPHARMA", "BALKRISIND", "BANDHANBNK", "BATAINDIA", "BEL", "BHARATFORG",
	"BHEL", "BIOCON", "BLUEDART", "CANBK", "CANFINHOME", "CASTROLIND",
	"CENTRALBK", "CESC", "CGPOWER", "CHAMBLFERT", "COFORGE", "CONCOR",
	"COROMANDEL", "CROMPTON", "CUB", "CUMMINSIND", "CYIENT", "DALBHARAT",
	"DEEPAKNTR", "DELHIVERY", "DIXON", "ELGIEQUIP", "EMAMILTD", "ENDURANCE",
	"EQUITASBNK", "ESCORTS", "EXIDEIND", "FEDERALBNK", "FINEORG", "FLUOROCHEM",
	"FORTIS", "FSL", "GLAND", "GLAXO", "GLENMARK", "GNFC",
	"GODREJPROP", "GRANULES", "GSPL", "GUJGASLTD", "HAL", "HAPPSTMNDS",
	"HATSUN", "HEG", "HFCL", "HINDCOPPER", "HINDPETRO", "HONAUT",
	"IBREALEST", "IDFCFIRSTB", "IEX", "IIFL", "INDHOTEL", "INDIAMART",
	"INTELLECT", "IOB", "IPCALAB", "IRB", "IRCTC", "IRFC",
	"JBCHEPHARM", "JINDALSAW", "JKCEMENT", "JKLAKSHMI", "JMFINANCIL",
	"JSL", "JSWENERGY", "JTEKTINDIA", "KAJARIACER", "KALPATPOWR",
	"KANSAINER", "KEI", "KIRLOSENG", "KPITTECH", "KRBL", "KTKBANK",
	"LALPATHLAB", "LAURUSLABS", "LICHSGFIN", "LTIM", "LTTS",
	"M&MFIN", "MAHABANK", "MAHINDCIE", "MANAPPURAM", "MASTEK",
	"MAXHEALTH", "METROPOLIS", "MFSL", "MGL", "MOTHERSON", "MPHASIS",
	"MRF", "MRPL", "NAM-INDIA", "NATCOPHARM", "NATIONALUM",
	"NAVINFLUOR", "NESCO", "NHPC", "NIACL", "NLCINDIA", "NMDC", "NUVAMA",
	"OBEROIRLTY", "OFSS", "OIL", "OLECTRA", "PATANJALI",
	"PERSISTENT", "PFC", "PHOENIXLTD",
	"PIIND", "PNBHOUSING", "POLYCAB", "POLYMED", "POONAWALLA",
	"POWERMECH", "PRESTIGE", "PRINCEPIPE", "PVRINOX", "RADICO", "RAIN",
	"RAJESHEXPO", "RAMCOCEM", "RATNAMANI", "RAYMOND", "RECLTD", "RELAXO",
	"ROUTE", "SCHAEFFLER", "SHRIRAMFIN", "SJVN", "SKFINDIA",
	"SOBHA", "SONACOMS", "SPARC", "STARHEALTH", "SUNDARMFIN",
	"SUNDRMFAST", "SUNTV", "SUPRAJIT", "SUPREMEIND", "SWANENERGY", "SYMPHON",
	"SYNGENE", "TANLA", "TATACHEM", "TATACOMM", "TATAELXSI", "TATAINVEST",
	"TATVA", "TCI", "TCIEXP", "THERMAX", "TIINDIA",
	"TIMKEN", "TITAGARH", "TORNTPOWER", "TRIDENT", "TRITURBINE", "TRIVENI",
	"TTKPRESTIG", "TVSMOTOR", "UBL", "UCOBANK", "UNIONBANK",
	"UTIAMC", "VINATIORGA", "VOLTAS", "VGUARD", "WELCORP",
	"WESTLIFE", "WHIRLPOOL", "YESBANK", "ZENSARTECH", "ZFCVINDIA",

	// Additional Nifty 500 constituents
	"3MINDIA", "AAVAS", "ABBOTINDIA", "ACE", "ADANIENSOL", "ADANIPOWER",
	"AEGISLOG", "AFFLE", "AJMERA", "AKZOINDIA", "ALLCARGO", "ALOKINDS",
	"ANANTRAJ", "ANGELONE", "APARINDS", "APTUS", "ARCHIDPLY",
	"ARVINDFASN", "ASAHIINDIA", "ASTERDM", "ASTRAZEN", "ATGL",
	"AUROCHM", "AVANTIFEED", "AWL", "BAJAJELEC", "BAJAJHLDNG", "BALRAMCHIN",
	"BANCOINDIA", "BASF", "BAYERCROP", "BDL", "BEML", "BLUESTARCO",
	"BORORENEW", "BRIGADE", "BSOFT", "CAPLIPOINT", "CARBORUNIV",
	"CARERATING", "CDSL", "CENTURYTEX", "CERA", "CHALET", "CHEMCON",
	"CLEAN", "CMSINFO", "COCHINSHIP", "CRAFTSMAN", "CREDITACC", "CRISIL",
	"DATAPATTNS", "DCBBANK", "DCMSHRIRAM", "DELTACORP", "DEVYANI", "DHANI",
	"DODLA", "DOMS", "ECLERX", "EDELWEISS", "EIDPARRY", "ELECON",
	"EPL", "ESABINDIA", "FINCABLES", "FINPIPE", "FDC", "GABRIEL",
	"GARFIBRES", "GATEWAY", "GESHIP", "GHCL", "GILLETTE", "GLS",
	"GOCOLORS", "GODREJAGRO", "GODREJIND", "GOODYEAR", "GPPL", "GRINDWELL",
	"GRSE", "GSFC", "GTPL", "HAPPIEST", "HCG", "HDFCAMC", "HEMIPROP",
	"HGINFRA", "HIKAL", "HIL", "HGS", "HINDZINC",
	"HOMEFIRST", "HONASA", "HSCL", "HUDCO", "ICRA", "IDBI", "IFBIND",
	"IIFLSEC", "IMFA", "INDIACEM", "INDIGRID", "INDOSTAR", "INFIBEAM",
	"INOXGREEN", "INOXIND", "INOXWIND", "IONEXCHANG", "IOLCP",
	"IRCON", "ISEC", "ITDC", "ITI", "J&KBANK", "JAMNAAUTO", "JBMA",
	"JKPAPER", "JKTYRE", "JSLHISAR", "JUSTDIAL", "JYOTHYLAB", "KALYANKJIL",
	"KARURVYSYA", "KCP", "KFINTECH", "KIOCL", "KNRCON", "KPIGREEN",
	"KPRMILL", "KSB", "LATENTVIEW", "LEMONTREE", "LINDEINDIA",
	"LLOYDSME", "LODHA", "LTFOODS", "LUXIND", "MAHLIFE",
	"MAHLOG", "MAHSCOOTER", "MAHSEAMLES", "MAITHANALL", "MANINFRA", "MANKIND",
	"MAPMYINDIA", "MARKSANS", "MAZAGONDOCK", "MCX", "MEDANTA", "MEDPLUS",
	"MIDHANI", "MMTC", "MOIL", "MOTILALOFS", "MSTCLTD",
	"NBCC", "NCC", "NEWGEN", "NSLNISP", "NUVOCO", "NYKAA",
	"PAYTM", "PNCINFRA", "PRAKASH", "PRSMJOHNSN", "PSB", "PTC",
	"QUESS", "RBLBANK", "RCF", "REDINGTON", "RENUKA",
	"RITES", "RVNL", "SAFARI", "SAGCEM", "SANOFI", "SAPPHIRE",
	"SAREGAMA", "SCI", "SEQUENT", "SFL", "SHARDACROP", "SHILPAMED",
	"SHOPERSTOP", "SIS", "SOLARINDS", "SOLARA", "SONATSOFTW", "SOUTHBANK",
	"STAR", "STLTECH", "SUBROS", "SUMICHEM", "SUNFLAG",
	"SURYAROSNI", "SUVENPHAR", "SUZLON", "SWARAJENG", "SWSOLAR",
	"TARSONS", "TASTYBITE", "TEAMLEASE", "TEXRAIL",
	"THYROCARE", "TINPLATE", "TMB", "TRIL",
	"TTML", "TV18BRDCST", "TVSSRICHAK", "TVTODAY", "TWL", "UJJIVAN",
	"UJJIVANSFB", "UNOMINDA", "USHAMART", "VAIBHAVGBL", "VALIANT", "VARROC",
	"VBL", "VENKEYS", "VIJAYA", "VIPIND", "VMART",
	"VSTIND", "VTL", "WABCOINDIA", "WELSPUNLIV", "WOCKPHARMA", "WONDERLA",
	"XPROINDIA", "ZEEL",
}

// Nifty500 returns a copy of the built-in symbol list.
func Nifty500() []string {
	out := make([]string, len(nifty500))
	copy(out, nifty500)
	return out
}
