package geo

// places maps known place names (upper-case, accent variants included) to
// their coordinates. Grown from the locations the fleet actually serves;
// unknown places simply resolve to no coordinates.
var places = map[string]Coordinates{

	// Navarra
	"AZAGRA":                      {42.3167, -1.8833},
	"MELIDA":                      {42.3833, -1.5500},
	"MÉLIDA":                      {42.3833, -1.5500},
	"TUDELA":                      {42.0617, -1.6067},
	"PAMPLONA":                    {42.8125, -1.6458},
	"SAN ADRIAN":                  {42.3417, -1.9333},
	"SAN ADRIÁN":                  {42.3417, -1.9333},
	"PERALTA":                     {42.3333, -1.8000},
	"FALCES":                      {42.3833, -1.8000},
	"TAFALLA":                     {42.5167, -1.6667},
	"OLITE":                       {42.4833, -1.6500},
	"ESTELLA":                     {42.6667, -2.0333},
	"MENDAVIA":                    {42.4333, -2.2000},
	"LODOSA":                      {42.4333, -2.0833},
	"SARTAGUDA":                   {42.3833, -2.0500},
	"CORELLA":                     {42.1167, -1.7833},
	"CINTRUENIGO":                 {42.0833, -1.8000},
	"CAPARROSO":                   {42.3333, -1.6333},
	"CARCASTILLO":                 {42.3667, -1.4667},

	// La Rioja
	"CALAHORRA":                   {42.3050, -1.9653},
	"LOGROÑO":                     {42.4650, -2.4456},
	"ALFARO":                      {42.1833, -1.7500},
	"ARNEDO":                      {42.2167, -2.1000},
	"AUTOL":                       {42.2167, -2.0000},
	"QUEL":                        {42.2333, -2.0500},
	"ALDEANUEVA":                  {42.2333, -1.9000},
	"ALDEANUEVA DE EBRO":          {42.2333, -1.9000},
	"PRADEJÓN":                    {42.3000, -2.0333},
	"PRADEJON":                    {42.3000, -2.0333},
	"RINCON DE SOTO":              {42.2333, -1.8500},
	"HARO":                        {42.5833, -2.8500},

	// Aragón
	"ZARAGOZA":                    {41.6488, -0.8891},
	"HUESCA":                      {42.1401, -0.4089},
	"TERUEL":                      {40.3456, -1.1065},
	"CALATAYUD":                   {41.3500, -1.6333},
	"EJEA":                        {42.1333, -1.1333},
	"TARAZONA":                    {41.9000, -1.7167},

	// Cataluña
	"BARCELONA":                   {41.3851, 2.1734},
	"VIC":                         {41.9304, 2.2546},
	"LLEIDA":                      {41.6176, 0.6200},
	"TARRAGONA":                   {41.1189, 1.2445},
	"GIRONA":                      {41.9794, 2.8214},
	"REUS":                        {41.1561, 1.1069},
	"FIGUERES":                    {42.2667, 2.9617},
	"MANRESA":                     {41.7286, 1.8265},
	"SABADELL":                    {41.5463, 2.1086},
	"TERRASSA":                    {41.5630, 2.0089},
	"IGUALADA":                    {41.5833, 1.6167},
	"MARTORELL":                   {41.4739, 1.9303},
	"MOLLET":                      {41.5400, 2.2136},
	"GRANOLLERS":                  {41.6083, 2.2875},

	// Madrid y centro
	"MADRID":                      {40.4168, -3.7038},
	"MERCAMADRID":                 {40.3833, -3.6500},
	"TORREJON DE ARDOZ":           {40.4603, -3.4689},
	"GETAFE":                      {40.3047, -3.7311},
	"ALCALA DE HENARES":           {40.4819, -3.3635},
	"MOSTOLES":                    {40.3228, -3.8650},
	"LEGANES":                     {40.3281, -3.7642},
	"FUENLABRADA":                 {40.2839, -3.8000},
	"ALCORCON":                    {40.3489, -3.8317},
	"TOLEDO":                      {39.8628, -4.0273},
	"GUADALAJARA":                 {40.6337, -3.1667},
	"ARANJUEZ":                    {40.0333, -3.6000},
	"ARGANDA":                     {40.3000, -3.4333},

	// País Vasco
	"BILBAO":                      {43.2630, -2.9350},
	"VITORIA":                     {42.8467, -2.6728},
	"VITORIA-GASTEIZ":             {42.8467, -2.6728},
	"SAN SEBASTIAN":               {43.3183, -1.9812},
	"DONOSTIA":                    {43.3183, -1.9812},
	"IRUN":                        {43.3378, -1.7889},
	"EIBAR":                       {43.1847, -2.4722},
	"DURANGO":                     {43.1700, -2.6333},
	"BASAURI":                     {43.2333, -2.8833},
	"BARAKALDO":                   {43.2956, -2.9906},

	// Cantabria y Asturias
	"SANTANDER":                   {43.4623, -3.8100},
	"TORRELAVEGA":                 {43.3500, -4.0500},
	"OVIEDO":                      {43.3614, -5.8494},
	"GIJON":                       {43.5453, -5.6615},
	"GIJÓN":                       {43.5453, -5.6615},
	"AVILES":                      {43.5578, -5.9250},
	"LANGREO":                     {43.3000, -5.6833},
	"MIERES":                      {43.2500, -5.7667},

	// Galicia
	"VIGO":                        {42.2314, -8.7124},
	"A CORUÑA":                    {43.3713, -8.3960},
	"LA CORUÑA":                   {43.3713, -8.3960},
	"CORUÑA":                      {43.3713, -8.3960},
	"SANTIAGO":                    {42.8782, -8.5448},
	"OURENSE":                     {42.3400, -7.8648},
	"LUGO":                        {43.0097, -7.5567},
	"PONTEVEDRA":                  {42.4310, -8.6447},
	"FERROL":                      {43.4833, -8.2333},

	// Valencia Y Murcia
	"VALENCIA":                    {39.4699, -0.3763},
	"MERCAVALENCIA":               {39.4500, -0.3833},
	"ALICANTE":                    {38.3452, -0.4815},
	"CASTELLON":                   {39.9864, -0.0513},
	"SAGUNTO":                     {39.6833, -0.2667},
	"GANDIA":                      {38.9667, -0.1833},
	"ALZIRA":                      {39.1500, -0.4333},
	"MURCIA":                      {37.9922, -1.1307},
	"MERCAMURCIA":                 {37.9667, -1.1500},
	"ALCANTARILLA":                {37.9694, -1.2136},
	"CARTAGENA":                   {37.6057, -0.9916},
	"LORCA":                       {37.6775, -1.7014},
	"ELCHE":                       {38.2669, -0.6983},

	// Andalucía
	"SEVILLA":                     {37.3891, -5.9845},
	"MERCASEVILLA":                {37.3500, -5.9667},
	"MALAGA":                      {36.7213, -4.4214},
	"CORDOBA":                     {37.8882, -4.7794},
	"GRANADA":                     {37.1773, -3.5986},
	"ALMERIA":                     {36.8340, -2.4637},
	"JAEN":                        {37.7796, -3.7849},
	"HUELVA":                      {37.2571, -6.9497},
	"CADIZ":                       {36.5271, -6.2886},
	"JEREZ":                       {36.6817, -6.1378},
	"ALGECIRAS":                   {36.1408, -5.4536},
	"MOTRIL":                      {36.7500, -3.5167},
	"ANTEQUERA":                   {37.0167, -4.5500},

	// Extremadura
	"MERIDA":                      {38.9161, -6.3436},
	"MÉRIDA":                      {38.9161, -6.3436},
	"BADAJOZ":                     {38.8794, -6.9706},
	"CACERES":                     {39.4753, -6.3724},
	"PLASENCIA":                   {40.0303, -6.0906},
	"DON BENITO":                  {38.9553, -5.8614},
	"VILLANUEVA":                  {38.9833, -5.8000},
	"ALMENDRALEJO":                {38.6833, -6.4000},
	"ZAFRA":                       {38.4167, -6.4167},

	// Castilla y León
	"VALLADOLID":                  {41.6523, -4.7245},
	"BURGOS":                      {42.3439, -3.6969},
	"SALAMANCA":                   {40.9701, -5.6635},
	"LEON":                        {42.5987, -5.5671},
	"PALENCIA":                    {42.0096, -4.5288},
	"ZAMORA":                      {41.5034, -5.7467},
	"AVILA":                       {40.6566, -4.6819},
	"SEGOVIA":                     {40.9429, -4.1088},
	"SORIA":                       {41.7636, -2.4649},
	"ARANDA DE DUERO":             {41.6703, -3.6892},
	"MIRANDA DE EBRO":             {42.6867, -2.9472},
	"BENAVENTE":                   {42.0028, -5.6783},
	"PONFERRADA":                  {42.5500, -6.5833},
	"ASTORGA":                     {42.4583, -6.0500},

	// Castilla-La Mancha
	"ALBACETE":                    {38.9943, -1.8585},
	"CIUDAD REAL":                 {38.9848, -3.9274},
	"CUENCA":                      {40.0704, -2.1374},
	"TALAVERA":                    {39.9635, -4.8307},
	"PUERTOLLANO":                 {38.6870, -4.1072},
	"TOMELLOSO":                   {39.1582, -3.0241},
	"ALCAZAR DE SAN JUAN":         {39.3897, -3.2089},
	"MANZANARES":                  {38.9981, -3.3697},
	"VALDEPENAS":                  {38.7622, -3.3847},
}
